package controllers

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/barberflow/barberflow/db"
	"github.com/barberflow/barberflow/models"
	"github.com/barberflow/barberflow/schedule"
	"github.com/barberflow/barberflow/utils"
)

// slotTakenMessage is the message booking UIs show when the slot race
// is lost. It is the expected outcome of two clients viewing the same
// stale agenda, not an exceptional failure.
const slotTakenMessage = "horário já ocupado"

// errSlotTaken marks a lost slot race inside the booking transaction.
var errSlotTaken = errors.New(slotTakenMessage)

// isSlotConflict distinguishes a lost slot race from a real store
// failure. Besides the in-transaction sentinel it recognizes the
// unique-index violation raised when two inserts slip past the lock.
func isSlotConflict(err error) bool {
	if errors.Is(err, errSlotTaken) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// BookingInput is the booking submission payload.
type BookingInput struct {
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	ServiceID  uint     `json:"service_id"`
	BarberID   uint     `json:"barber_id"`
	ClientID   *uint    `json:"client_id"`
	ClientName string   `json:"client_name"`
	Price      *float64 `json:"price"`
	Notes      string   `json:"notes"`
}

// GetAllAppointments godoc
// @Summary List appointments, optionally filtered by date, status or barber
// @Tags appointments
// @Produce json
// @Success 200 {array} models.Appointment
// @Router /appointments [get]
func GetAllAppointments(c *fiber.Ctx) error {
	query := db.DB.Preload("Service").Preload("Client")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", schedule.NormalizeDate(date))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if barberID := c.QueryInt("barber_id"); barberID > 0 {
		query = query.Where("barber_id = ?", barberID)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment godoc
// @Summary Get an appointment by ID
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Router /appointments/{id} [get]
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Client").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment godoc
// @Summary Book a slot
// @Description Creates an appointment if the (date, time) slot is open,
// on the slot grid and not already taken. The availability check against
// the loaded agenda is advisory; the decisive check runs inside the
// transaction, and losing the race yields 409.
// @Tags appointments
// @Accept json
// @Produce json
// @Success 201 {object} models.Appointment
// @Failure 409 {object} utils.ErrorResponse
// @Router /appointments [post]
func CreateAppointment(c *fiber.Ctx) error {
	var input BookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	input.Date = schedule.NormalizeDate(input.Date)

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}

	settings, err := loadShopSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load shop settings",
			Error:   err.Error(),
		})
	}
	exceptions, err := loadExceptions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load schedule exceptions",
			Error:   err.Error(),
		})
	}
	bookings, err := loadDayBookings(input.Date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load appointments",
			Error:   err.Error(),
		})
	}

	ok, err := schedule.CanBook(input.Date, input.Time, settings.Engine(), exceptions, bookings, time.Now())
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid booking request",
				Error:   verr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check availability",
			Error:   err.Error(),
		})
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: slotTakenMessage,
		})
	}

	price := service.Price
	if input.Price != nil {
		price = *input.Price
	}

	appointment := models.Appointment{
		Reference:  utils.NewBookingReference(),
		Date:       input.Date,
		Time:       input.Time,
		Status:     models.StatusPending,
		ServiceID:  service.ID,
		BarberID:   input.BarberID,
		ClientID:   input.ClientID,
		ClientName: input.ClientName,
		Price:      price,
		Notes:      input.Notes,
	}

	// The decisive conflict check: lock any active booking on the slot,
	// then insert. The partial unique index on (date, time) backs this
	// up even if two transactions slip past the lock.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		res := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE date = ? AND time = ? AND status <> ? AND deleted_at IS NULL
			FOR UPDATE
			LIMIT 1
		`, appointment.Date, appointment.Time, models.StatusCancelled).Scan(&existing)
		if res.Error != nil {
			return res.Error
		}
		if existing.ID != 0 {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if isSlotConflict(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: slotTakenMessage,
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	sendBookingEmail(&appointment, "Agendamento recebido",
		"Recebemos seu agendamento. Aguarde a confirmação da barbearia.")

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment godoc
// @Summary Reschedule or edit an appointment
// @Description Moving an appointment to another (date, time) re-runs
// the full booking gate for the new slot.
// @Tags appointments
// @Router /appointments/{id} [patch]
func UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	var input BookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	newDate := appointment.Date
	if input.Date != "" {
		newDate = schedule.NormalizeDate(input.Date)
	}
	newTime := appointment.Time
	if input.Time != "" {
		newTime = input.Time
	}

	moved := newDate != appointment.Date || newTime != appointment.Time
	if moved {
		settings, err := loadShopSettings()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load shop settings",
				Error:   err.Error(),
			})
		}
		exceptions, err := loadExceptions()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load schedule exceptions",
				Error:   err.Error(),
			})
		}
		bookings, err := loadDayBookings(newDate)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load appointments",
				Error:   err.Error(),
			})
		}

		ok, err := schedule.CanBook(newDate, newTime, settings.Engine(), exceptions, bookings, time.Now())
		if err != nil {
			var verr *schedule.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
					Message: "Invalid reschedule request",
					Error:   verr.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to check availability",
				Error:   err.Error(),
			})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: slotTakenMessage,
			})
		}
	}

	appointment.Date = newDate
	appointment.Time = newTime
	if input.ClientName != "" {
		appointment.ClientName = input.ClientName
	}
	if input.Notes != "" {
		appointment.Notes = input.Notes
	}
	if input.Price != nil {
		appointment.Price = *input.Price
	}
	if input.ServiceID != 0 {
		appointment.ServiceID = input.ServiceID
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		if moved && isSlotConflict(err) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: slotTakenMessage,
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// UpdateAppointmentStatus godoc
// @Summary Move an appointment through its status state machine
// @Tags appointments
// @Router /appointments/{id}/status [patch]
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	var input struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	}

	if appointment.Status == models.StatusConfirmed {
		sendBookingEmail(&appointment, "Agendamento confirmado",
			"Seu horário foi confirmado. Até breve!")
	}

	return c.JSON(appointment)
}

// CancelAppointment godoc
// @Summary Cancel an appointment
// @Description Cancelling frees the slot immediately. Cancelling an
// already-cancelled appointment is a no-op and still returns 200.
// @Tags appointments
// @Router /appointments/{id}/cancel [post]
func CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.Cancel(db.DB); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}

// sendBookingEmail mails the booking's client when an address is known.
// Delivery failures are logged and never fail the request.
func sendBookingEmail(appointment *models.Appointment, subject, intro string) {
	var client models.Client
	if appointment.ClientID == nil {
		return
	}
	if err := db.DB.First(&client, *appointment.ClientID).Error; err != nil || client.Email == "" {
		return
	}

	body := fmt.Sprintf(`
		<p>Olá %s,</p>
		<p>%s</p>
		<ul>
			<li><strong>Data:</strong> %s</li>
			<li><strong>Horário:</strong> %s</li>
			<li><strong>Código:</strong> %s</li>
		</ul>
	`, client.Name, intro, appointment.Date, appointment.Time, appointment.Reference)

	if err := utils.SendEmail(client.Email, subject, body); err != nil {
		log.Printf("Failed to send booking email for appointment %d: %v", appointment.ID, err)
	}
}
