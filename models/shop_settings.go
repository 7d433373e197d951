package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/barberflow/barberflow/schedule"
)

// ShopSettings is the single row of shop-wide scheduling parameters.
type ShopSettings struct {
	gorm.Model
	StartHour    int `json:"start_hour" gorm:"default:9"`
	EndHour      int `json:"end_hour" gorm:"default:20"`
	SlotInterval int `json:"slot_interval" gorm:"default:30"`
	// ClosedWeekdays is a comma-separated list of weekday numbers
	// (0 = Sunday). Recurring closure lives here instead of being
	// hard-coded anywhere, so there is one closure policy.
	ClosedWeekdays string `json:"closed_weekdays" gorm:"size:13;default:'0'"`
}

func (s *ShopSettings) BeforeSave(tx *gorm.DB) error {
	return s.Engine().Validate()
}

// Weekdays parses the ClosedWeekdays list. Malformed entries are
// ignored rather than closing a day by accident.
func (s *ShopSettings) Weekdays() []time.Weekday {
	var days []time.Weekday
	for _, part := range strings.Split(s.ClosedWeekdays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

// Engine projects the row into the schedule engine's settings.
func (s *ShopSettings) Engine() schedule.Settings {
	return schedule.Settings{
		StartHour:      s.StartHour,
		EndHour:        s.EndHour,
		SlotInterval:   s.SlotInterval,
		ClosedWeekdays: s.Weekdays(),
	}
}

// ScheduleException overrides shop hours for a single date, up to full
// closure. Closed wins over any hour override.
type ScheduleException struct {
	gorm.Model
	Date      string `json:"date" gorm:"size:10;uniqueIndex"`
	StartHour *int   `json:"start_hour"`
	EndHour   *int   `json:"end_hour"`
	Closed    bool   `json:"closed"`
	Reason    string `json:"reason" gorm:"size:255"`
}

func (e *ScheduleException) BeforeSave(tx *gorm.DB) error {
	e.Date = schedule.NormalizeDate(e.Date)
	_, err := schedule.ParseDate(e.Date)
	return err
}

// ExceptionMap converts exception rows into the engine's lookup form.
func ExceptionMap(exceptions []ScheduleException) map[string]schedule.Exception {
	m := make(map[string]schedule.Exception, len(exceptions))
	for _, e := range exceptions {
		m[e.Date] = schedule.Exception{
			StartHour: e.StartHour,
			EndHour:   e.EndHour,
			Closed:    e.Closed,
		}
	}
	return m
}
