package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barberflow/barberflow/schedule"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOccupies(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted} {
		a := Appointment{Status: status}
		assert.True(t, a.Occupies(), "%s should occupy its slot", status)
	}
	a := Appointment{Status: StatusCancelled}
	assert.False(t, a.Occupies())
}

func TestSlotBookings(t *testing.T) {
	appointments := []Appointment{
		{Date: "2024-06-01", Time: "10:00", Status: StatusConfirmed},
		{Date: "2024-06-01T12:00:00Z", Time: "12:00", Status: StatusCancelled},
	}
	bookings := SlotBookings(appointments)
	assert.Equal(t, []schedule.Booking{
		{Date: "2024-06-01", Time: "10:00", Cancelled: false},
		{Date: "2024-06-01T12:00:00Z", Time: "12:00", Cancelled: true},
	}, bookings)
}

func TestShopSettingsWeekdays(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 1},
		{"0,1", 2},
		{"", 0},
		{"0, 6", 2},
		{"7,abc,0", 1},
	}
	for _, tt := range tests {
		s := ShopSettings{ClosedWeekdays: tt.in}
		assert.Len(t, s.Weekdays(), tt.want, "input %q", tt.in)
	}
}
