package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/schedule"
	"github.com/barberflow/barberflow/utils"
)

// GetAgenda godoc
// @Summary Classified slot list for a date
// @Description Every slot of the date with its status: available,
// occupied or passed. Computed fresh on each request, never cached.
// @Tags agenda
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Router /agenda/{date} [get]
func GetAgenda(c *fiber.Ctx) error {
	return agendaResponse(c, false)
}

// GetAvailableSlots godoc
// @Summary Available slots only, for the client booking UI
// @Tags agenda
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Router /agenda/{date}/available [get]
func GetAvailableSlots(c *fiber.Ctx) error {
	return agendaResponse(c, true)
}

func agendaResponse(c *fiber.Ctx, availableOnly bool) error {
	date := schedule.NormalizeDate(c.Params("date"))

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
	bookings, err := loadDayBookings(date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load appointments",
			Error:   err.Error(),
		})
	}

	slots, err := schedule.BuildAgenda(date, settings.Engine(), exceptions, bookings, time.Now())
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid agenda request",
				Error:   verr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build agenda",
			Error:   err.Error(),
		})
	}

	if availableOnly {
		available := make([]schedule.Slot, 0, len(slots))
		for _, slot := range slots {
			if slot.Status == schedule.SlotAvailable {
				available = append(available, slot)
			}
		}
		slots = available
	}

	return c.JSON(fiber.Map{
		"date":  date,
		"slots": slots,
		"count": len(slots),
	})
}
