package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/barberflow/barberflow/schedule"
)

type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// transitions lists the statuses each status may move to. Completed and
// cancelled are terminal.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether the status change is allowed.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment is a booking at an exact (date, time) slot. Date and Time
// are stored as YYYY-MM-DD and zero-padded HH:mm strings; the agenda
// matches them by string equality, so the format must never be
// reformatted on the way in or out.
type Appointment struct {
	gorm.Model
	Reference   string            `json:"reference" gorm:"size:36;uniqueIndex"`
	Date        string            `json:"date" gorm:"size:10;index:idx_appointments_date_time"`
	Time        string            `json:"time" gorm:"size:5;index:idx_appointments_date_time"`
	Status      AppointmentStatus `json:"status" gorm:"size:20;default:'pending'"`
	ServiceID   uint              `json:"service_id"`
	Service     Service           `json:"service" gorm:"foreignKey:ServiceID"`
	BarberID    uint              `json:"barber_id"`
	Barber      User              `json:"barber,omitempty" gorm:"foreignKey:BarberID"`
	ClientID    *uint             `json:"client_id"`
	Client      *Client           `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ClientName  string            `json:"client_name"`
	Price       float64           `json:"price"`
	Notes       string            `json:"notes" gorm:"size:255"`
	CancelledAt *time.Time        `json:"cancelled_at"`
}

func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	a.Date = schedule.NormalizeDate(a.Date)
	if _, err := schedule.ParseDate(a.Date); err != nil {
		return err
	}
	if !schedule.ValidClock(a.Time) {
		return fmt.Errorf("invalid appointment time %q: must be zero-padded HH:mm", a.Time)
	}
	return nil
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// UpdateStatus applies the state machine and persists the change.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if newStatus == StatusCancelled {
		return a.Cancel(tx)
	}
	if !CanTransition(a.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}
	a.Status = newStatus
	return tx.Save(a).Error
}

// Cancel marks the appointment cancelled and frees its slot. Cancelling
// an already-cancelled appointment is a no-op, not an error.
func (a *Appointment) Cancel(tx *gorm.DB) error {
	if a.Status == StatusCancelled {
		return nil
	}
	if a.Status == StatusCompleted {
		return fmt.Errorf("invalid transition from %s to %s", StatusCompleted, StatusCancelled)
	}
	now := time.Now()
	a.Status = StatusCancelled
	a.CancelledAt = &now
	return tx.Save(a).Error
}

// Occupies reports whether this appointment blocks its slot.
func (a *Appointment) Occupies() bool {
	return a.Status != StatusCancelled
}

// SlotBooking projects the appointment into the schedule engine's view.
func (a *Appointment) SlotBooking() schedule.Booking {
	return schedule.Booking{
		Date:      a.Date,
		Time:      a.Time,
		Cancelled: a.Status == StatusCancelled,
	}
}

// SlotBookings converts a day's appointments for the engine.
func SlotBookings(appointments []Appointment) []schedule.Booking {
	bookings := make([]schedule.Booking, len(appointments))
	for i := range appointments {
		bookings[i] = appointments[i].SlotBooking()
	}
	return bookings
}
