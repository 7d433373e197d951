package controllers

import (
	"github.com/barberflow/barberflow/db"
	"github.com/barberflow/barberflow/models"
	"github.com/barberflow/barberflow/schedule"
)

// loadShopSettings fetches the singleton settings row.
func loadShopSettings() (models.ShopSettings, error) {
	var settings models.ShopSettings
	err := db.DB.First(&settings).Error
	return settings, err
}

// loadExceptions fetches all date overrides in engine form.
func loadExceptions() (map[string]schedule.Exception, error) {
	var exceptions []models.ScheduleException
	if err := db.DB.Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return models.ExceptionMap(exceptions), nil
}

// loadDayBookings fetches the appointments of one date for the engine.
// Cancelled rows are included; the engine ignores them itself.
func loadDayBookings(date string) ([]schedule.Booking, error) {
	var appointments []models.Appointment
	if err := db.DB.Where("date = ?", date).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return models.SlotBookings(appointments), nil
}
