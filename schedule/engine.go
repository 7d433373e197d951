// Package schedule holds the slot availability engine: pure computation
// over shop hours, per-date exceptions and existing bookings. It does no
// I/O; callers load settings and appointments and pass them in.
package schedule

import (
	"fmt"
	"time"
)

// SlotStatus classifies a bookable slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
	SlotPassed    SlotStatus = "passed"
)

// Slot is a derived time unit, never persisted.
type Slot struct {
	Time   string     `json:"time"`
	Status SlotStatus `json:"status"`
}

// Settings are the shop-wide scheduling parameters.
type Settings struct {
	StartHour      int
	EndHour        int
	SlotInterval   int // minutes between bookable slots
	ClosedWeekdays []time.Weekday
}

// Exception overrides hours for a single date. A nil field falls back to
// the global setting. Closed wins over any hour override.
type Exception struct {
	StartHour *int
	EndHour   *int
	Closed    bool
}

// Booking is the slice of an appointment the engine cares about.
type Booking struct {
	Date      string
	Time      string
	Cancelled bool
}

// Hours are the effective operating hours resolved for one date.
type Hours struct {
	StartHour int
	EndHour   int
	Interval  int
	Closed    bool
}

// ValidationError reports malformed settings or date/time input. The
// engine rejects bad input instead of silently producing an empty or
// wrong schedule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the shop parameters before any slot math.
func (s Settings) Validate() error {
	if s.StartHour < 0 || s.StartHour > 24 {
		return &ValidationError{Field: "start_hour", Reason: "must be between 0 and 24"}
	}
	if s.EndHour < 0 || s.EndHour > 24 {
		return &ValidationError{Field: "end_hour", Reason: "must be between 0 and 24"}
	}
	if s.StartHour >= s.EndHour {
		return &ValidationError{Field: "start_hour", Reason: "must be before end_hour"}
	}
	if s.SlotInterval <= 0 {
		return &ValidationError{Field: "slot_interval", Reason: "must be a positive number of minutes"}
	}
	return nil
}

// ResolveHours computes the effective hours for date. Weekday closures
// behave like an implicit exception with Closed set; an explicit entry
// for the date shadows it, so a normally closed weekday can still be
// opened with an hour override.
func ResolveHours(date string, s Settings, exceptions map[string]Exception) (Hours, error) {
	if err := s.Validate(); err != nil {
		return Hours{}, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return Hours{}, err
	}

	h := Hours{StartHour: s.StartHour, EndHour: s.EndHour, Interval: s.SlotInterval}

	exc, ok := exceptions[date]
	if !ok {
		for _, wd := range s.ClosedWeekdays {
			if day.Weekday() == wd {
				h.Closed = true
				return h, nil
			}
		}
		return h, nil
	}
	if exc.Closed {
		h.Closed = true
		return h, nil
	}
	if exc.StartHour != nil {
		h.StartHour = *exc.StartHour
	}
	if exc.EndHour != nil {
		h.EndHour = *exc.EndHour
	}
	if h.StartHour < 0 || h.EndHour > 24 || h.StartHour >= h.EndHour {
		return Hours{}, &ValidationError{Field: "exception", Reason: fmt.Sprintf("override hours %d-%d are not a valid range", h.StartHour, h.EndHour)}
	}
	return h, nil
}

// GenerateSlots enumerates the bookable times for date, strictly
// ascending, zero-padded HH:mm. A closed date yields an empty list.
func GenerateSlots(date string, s Settings, exceptions map[string]Exception) ([]string, error) {
	h, err := ResolveHours(date, s, exceptions)
	if err != nil {
		return nil, err
	}
	if h.Closed {
		return []string{}, nil
	}

	var slots []string
	for minute := h.StartHour * 60; minute < h.EndHour*60; minute += h.Interval {
		slots = append(slots, fmt.Sprintf("%02d:%02d", minute/60, minute%60))
	}
	return slots, nil
}

// ClassifySlot reports the state of one slot. Passed takes priority over
// occupied: a slot in the past is reported passed even if nominally
// free. Occupancy is existential over non-cancelled bookings whose
// normalized date and exact time string match.
func ClassifySlot(date, slot string, bookings []Booking, now time.Time) SlotStatus {
	date = NormalizeDate(date)

	if date == now.Format(dateLayout) {
		if m, ok := minuteOfClock(slot); ok && m < now.Hour()*60+now.Minute() {
			return SlotPassed
		}
	}

	for _, b := range bookings {
		if b.Cancelled {
			continue
		}
		if NormalizeDate(b.Date) == date && b.Time == slot {
			return SlotOccupied
		}
	}
	return SlotAvailable
}

// BuildAgenda returns every slot of the date with its classification.
// Results are computed fresh on each call and must not be cached across
// appointment mutations.
func BuildAgenda(date string, s Settings, exceptions map[string]Exception, bookings []Booking, now time.Time) ([]Slot, error) {
	times, err := GenerateSlots(date, s, exceptions)
	if err != nil {
		return nil, err
	}
	agenda := make([]Slot, len(times))
	for i, t := range times {
		agenda[i] = Slot{Time: t, Status: ClassifySlot(date, t, bookings, now)}
	}
	return agenda, nil
}

// CanBook is the single gate for accepting a (date, time) booking: the
// date is open, the time is one of the generated slots and the slot is
// available. It reads a snapshot of bookings that may already be stale,
// so it is advisory only; the store must re-check under a transaction.
func CanBook(date, slot string, s Settings, exceptions map[string]Exception, bookings []Booking, now time.Time) (bool, error) {
	date = NormalizeDate(date)
	times, err := GenerateSlots(date, s, exceptions)
	if err != nil {
		return false, err
	}
	member := false
	for _, t := range times {
		if t == slot {
			member = true
			break
		}
	}
	if !member {
		return false, nil
	}
	return ClassifySlot(date, slot, bookings, now) == SlotAvailable, nil
}
