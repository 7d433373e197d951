package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/barberflow/barberflow/db"
	"github.com/barberflow/barberflow/models"
	"github.com/barberflow/barberflow/schedule"
	"github.com/barberflow/barberflow/utils"
)

// GetShopSettings returns the shop-wide scheduling parameters.
func GetShopSettings(c *fiber.Ctx) error {
	settings, err := loadShopSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load shop settings",
			Error:   err.Error(),
		})
	}
	return c.JSON(settings)
}

// UpdateShopSettings changes the shop hours, slot interval or recurring
// closed weekdays. Invalid hours never reach the database.
func UpdateShopSettings(c *fiber.Ctx) error {
	settings, err := loadShopSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load shop settings",
			Error:   err.Error(),
		})
	}

	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := settings.Engine().Validate(); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid shop settings",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update shop settings",
			Error:   err.Error(),
		})
	}
	return c.JSON(settings)
}

// GetExceptions lists all per-date hour overrides and closures.
func GetExceptions(c *fiber.Ctx) error {
	var exceptions []models.ScheduleException
	if err := db.DB.Order("date asc").Find(&exceptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load schedule exceptions",
			Error:   err.Error(),
		})
	}
	return c.JSON(exceptions)
}

// UpsertException creates or replaces the override for one date. This
// is also the "close the shop on date X" operation: send closed=true.
func UpsertException(c *fiber.Ctx) error {
	date := schedule.NormalizeDate(c.Params("date"))
	if _, err := schedule.ParseDate(date); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid date",
			Error:   err.Error(),
		})
	}

	var input models.ScheduleException
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var exception models.ScheduleException
	err := db.DB.Where("date = ?", date).First(&exception).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		exception = models.ScheduleException{Date: date}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load schedule exception",
			Error:   err.Error(),
		})
	}
	exception.StartHour = input.StartHour
	exception.EndHour = input.EndHour
	exception.Closed = input.Closed
	exception.Reason = input.Reason

	// Reject overrides that would produce an invalid range, unless the
	// date is closed outright.
	if !exception.Closed {
		settings, err := loadShopSettings()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to load shop settings",
				Error:   err.Error(),
			})
		}
		exceptions := map[string]schedule.Exception{
			date: {StartHour: exception.StartHour, EndHour: exception.EndHour},
		}
		if _, err := schedule.ResolveHours(date, settings.Engine(), exceptions); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
				Message: "Invalid hour override",
				Error:   err.Error(),
			})
		}
	}

	if err := db.DB.Save(&exception).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save schedule exception",
			Error:   err.Error(),
		})
	}
	return c.JSON(exception)
}

// DeleteException removes the override, restoring default hours.
func DeleteException(c *fiber.Ctx) error {
	date := schedule.NormalizeDate(c.Params("date"))
	if err := db.DB.Where("date = ?", date).Delete(&models.ScheduleException{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete schedule exception",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
