package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/barberflow/barberflow/models"
	"github.com/barberflow/barberflow/schedule"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.ShopSettings{},
		&models.ScheduleException{},
	))
	require.NoError(t, ApplyBookingConflictIndex(gdb))

	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})
	return gdb
}

func TestBookingConflictIndex(t *testing.T) {
	gdb := openTestDB(t)

	first := models.Appointment{
		Reference:  "ref-1",
		Date:       "2024-06-01",
		Time:       "10:00",
		Status:     models.StatusConfirmed,
		ClientName: "João",
	}
	require.NoError(t, gdb.Create(&first).Error)

	// Second active booking on the same slot loses the race.
	second := models.Appointment{
		Reference:  "ref-2",
		Date:       "2024-06-01",
		Time:       "10:00",
		Status:     models.StatusPending,
		ClientName: "Pedro",
	}
	assert.Error(t, gdb.Create(&second).Error)

	// A different slot on the same date is fine.
	third := models.Appointment{
		Reference:  "ref-3",
		Date:       "2024-06-01",
		Time:       "10:30",
		Status:     models.StatusPending,
		ClientName: "Pedro",
	}
	assert.NoError(t, gdb.Create(&third).Error)
}

func TestCancelFreesSlot(t *testing.T) {
	gdb := openTestDB(t)

	booked := models.Appointment{
		Reference: "ref-10",
		Date:      "2024-06-02",
		Time:      "11:00",
		Status:    models.StatusConfirmed,
	}
	require.NoError(t, gdb.Create(&booked).Error)

	require.NoError(t, booked.Cancel(gdb))
	assert.Equal(t, models.StatusCancelled, booked.Status)
	assert.NotNil(t, booked.CancelledAt)

	// Cancelled bookings do not hold the unique index.
	rebooked := models.Appointment{
		Reference: "ref-11",
		Date:      "2024-06-02",
		Time:      "11:00",
		Status:    models.StatusPending,
	}
	assert.NoError(t, gdb.Create(&rebooked).Error)
}

func TestCancelIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)

	booked := models.Appointment{
		Reference: "ref-20",
		Date:      "2024-06-03",
		Time:      "09:00",
		Status:    models.StatusPending,
	}
	require.NoError(t, gdb.Create(&booked).Error)

	require.NoError(t, booked.Cancel(gdb))
	firstCancelledAt := booked.CancelledAt
	require.NotNil(t, firstCancelledAt)

	// Second cancel is a no-op: same state, same timestamp.
	require.NoError(t, booked.Cancel(gdb))
	assert.Equal(t, models.StatusCancelled, booked.Status)
	assert.Equal(t, firstCancelledAt, booked.CancelledAt)

	var stored models.Appointment
	require.NoError(t, gdb.First(&stored, booked.ID).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)
}

func TestRescheduleOntoOccupiedSlotRejected(t *testing.T) {
	gdb := openTestDB(t)

	first := models.Appointment{
		Reference: "ref-50",
		Date:      "2024-06-05",
		Time:      "10:00",
		Status:    models.StatusConfirmed,
	}
	require.NoError(t, gdb.Create(&first).Error)

	second := models.Appointment{
		Reference: "ref-51",
		Date:      "2024-06-05",
		Time:      "11:00",
		Status:    models.StatusPending,
	}
	require.NoError(t, gdb.Create(&second).Error)

	// The booking gate rejects the move before the store is touched.
	var day []models.Appointment
	require.NoError(t, gdb.Where("date = ?", "2024-06-05").Find(&day).Error)
	settings := schedule.Settings{StartHour: 9, EndHour: 20, SlotInterval: 30}
	now := time.Date(2024, 6, 4, 8, 0, 0, 0, time.Local)
	ok, err := schedule.CanBook("2024-06-05", "10:00", settings, nil, models.SlotBookings(day), now)
	require.NoError(t, err)
	assert.False(t, ok)

	// And the unique index rejects it even if the gate is bypassed.
	second.Time = "10:00"
	assert.Error(t, gdb.Save(&second).Error)

	// Moving to a free slot still works.
	second.Time = "12:00"
	assert.NoError(t, gdb.Save(&second).Error)
}

func TestAppointmentDateNormalizedOnSave(t *testing.T) {
	gdb := openTestDB(t)

	appt := models.Appointment{
		Reference: "ref-30",
		Date:      "2024-06-04T10:00:00.000Z",
		Time:      "10:00",
	}
	require.NoError(t, gdb.Create(&appt).Error)
	assert.Equal(t, "2024-06-04", appt.Date)
	assert.Equal(t, models.StatusPending, appt.Status)
}

func TestAppointmentRejectsMalformedTime(t *testing.T) {
	gdb := openTestDB(t)

	appt := models.Appointment{
		Reference: "ref-40",
		Date:      "2024-06-04",
		Time:      "9:00",
	}
	assert.Error(t, gdb.Create(&appt).Error)
}
