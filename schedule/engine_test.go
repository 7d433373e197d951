package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func defaultSettings() Settings {
	return Settings{StartHour: 9, EndHour: 20, SlotInterval: 30}
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name       string
		settings   Settings
		exceptions map[string]Exception
		date       string
		want       []string
	}{
		{
			name:     "three hour morning with 60 minute slots",
			settings: Settings{StartHour: 9, EndHour: 12, SlotInterval: 60},
			date:     "2024-06-03",
			want:     []string{"09:00", "10:00", "11:00"},
		},
		{
			name:     "30 minute slots end exclusive",
			settings: Settings{StartHour: 9, EndHour: 11, SlotInterval: 30},
			date:     "2024-06-03",
			want:     []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:     "interval that does not divide the day evenly",
			settings: Settings{StartHour: 9, EndHour: 11, SlotInterval: 45},
			date:     "2024-06-03",
			want:     []string{"09:00", "09:45", "10:30"},
		},
		{
			name:       "closed exception yields empty regardless of hours",
			settings:   defaultSettings(),
			exceptions: map[string]Exception{"2024-06-03": {Closed: true}},
			date:       "2024-06-03",
			want:       []string{},
		},
		{
			name:       "exception overrides start hour only",
			settings:   Settings{StartHour: 9, EndHour: 12, SlotInterval: 60},
			exceptions: map[string]Exception{"2024-06-03": {StartHour: intPtr(10)}},
			date:       "2024-06-03",
			want:       []string{"10:00", "11:00"},
		},
		{
			name:       "exception overrides end hour only",
			settings:   Settings{StartHour: 9, EndHour: 12, SlotInterval: 60},
			exceptions: map[string]Exception{"2024-06-03": {EndHour: intPtr(11)}},
			date:       "2024-06-03",
			want:       []string{"09:00", "10:00"},
		},
		{
			name:     "closed weekday behaves like a closed exception",
			settings: Settings{StartHour: 9, EndHour: 12, SlotInterval: 60, ClosedWeekdays: []time.Weekday{time.Sunday}},
			date:     "2024-06-02", // a Sunday
			want:     []string{},
		},
		{
			name:       "explicit exception reopens a closed weekday",
			settings:   Settings{StartHour: 9, EndHour: 20, SlotInterval: 60, ClosedWeekdays: []time.Weekday{time.Sunday}},
			exceptions: map[string]Exception{"2024-06-02": {StartHour: intPtr(10), EndHour: intPtr(13)}},
			date:       "2024-06-02", // a Sunday
			want:       []string{"10:00", "11:00", "12:00"},
		},
		{
			name:       "closed exception on a closed weekday stays closed",
			settings:   Settings{StartHour: 9, EndHour: 20, SlotInterval: 60, ClosedWeekdays: []time.Weekday{time.Sunday}},
			exceptions: map[string]Exception{"2024-06-02": {Closed: true}},
			date:       "2024-06-02",
			want:       []string{},
		},
		{
			name:       "exception on another date does not leak",
			settings:   Settings{StartHour: 9, EndHour: 12, SlotInterval: 60},
			exceptions: map[string]Exception{"2024-06-04": {Closed: true}},
			date:       "2024-06-03",
			want:       []string{"09:00", "10:00", "11:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlots(tt.date, tt.settings, tt.exceptions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlotsCardinalityAndOrder(t *testing.T) {
	cases := []Settings{
		{StartHour: 9, EndHour: 20, SlotInterval: 30},
		{StartHour: 8, EndHour: 22, SlotInterval: 60},
		{StartHour: 10, EndHour: 19, SlotInterval: 45},
		{StartHour: 0, EndHour: 24, SlotInterval: 15},
	}
	for _, s := range cases {
		t.Run(fmt.Sprintf("%d-%d every %dm", s.StartHour, s.EndHour, s.SlotInterval), func(t *testing.T) {
			got, err := GenerateSlots("2024-06-03", s, nil)
			require.NoError(t, err)
			assert.Len(t, got, (s.EndHour-s.StartHour)*60/s.SlotInterval)
			for i, slot := range got {
				assert.True(t, ValidClock(slot), "slot %q is not zero-padded HH:mm", slot)
				if i > 0 {
					assert.Less(t, got[i-1], slot, "slots must be strictly ascending")
				}
			}
		})
	}
}

func TestGenerateSlotsValidation(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		date     string
	}{
		{"start after end", Settings{StartHour: 20, EndHour: 9, SlotInterval: 30}, "2024-06-03"},
		{"start equals end", Settings{StartHour: 9, EndHour: 9, SlotInterval: 30}, "2024-06-03"},
		{"zero interval", Settings{StartHour: 9, EndHour: 20, SlotInterval: 0}, "2024-06-03"},
		{"negative interval", Settings{StartHour: 9, EndHour: 20, SlotInterval: -30}, "2024-06-03"},
		{"negative start hour", Settings{StartHour: -1, EndHour: 20, SlotInterval: 30}, "2024-06-03"},
		{"end hour past midnight", Settings{StartHour: 9, EndHour: 25, SlotInterval: 30}, "2024-06-03"},
		{"garbage date", defaultSettings(), "june 3rd"},
		{"month out of range", defaultSettings(), "2024-13-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSlots(tt.date, tt.settings, nil)
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestResolveHoursRejectsInvalidOverride(t *testing.T) {
	exceptions := map[string]Exception{
		"2024-06-03": {StartHour: intPtr(18), EndHour: intPtr(10)},
	}
	_, err := ResolveHours("2024-06-03", defaultSettings(), exceptions)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestClassifySlot(t *testing.T) {
	// Fixed clock: 2024-06-01 14:30 local.
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)

	bookings := []Booking{
		{Date: "2024-06-01", Time: "15:00", Cancelled: false},
		{Date: "2024-06-01", Time: "16:00", Cancelled: true},
		{Date: "2024-06-02T10:00:00.000Z", Time: "10:00", Cancelled: false},
	}

	tests := []struct {
		name string
		date string
		slot string
		want SlotStatus
	}{
		{"earlier today is passed", "2024-06-01", "10:00", SlotPassed},
		{"later today and free", "2024-06-01", "17:00", SlotAvailable},
		{"later today and booked", "2024-06-01", "15:00", SlotOccupied},
		{"cancelled booking never occupies", "2024-06-01", "16:00", SlotAvailable},
		{"tomorrow never passed", "2024-06-02", "08:00", SlotAvailable},
		{"timestamped booking date still matches", "2024-06-02", "10:00", SlotOccupied},
		{"exact now is not passed", "2024-06-01", "14:30", SlotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySlot(tt.date, tt.slot, bookings, now))
		})
	}
}

func TestClassifySlotPassedBeatsOccupied(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)
	bookings := []Booking{{Date: "2024-06-01", Time: "10:00"}}
	assert.Equal(t, SlotPassed, ClassifySlot("2024-06-01", "10:00", bookings, now))
}

func TestBuildAgenda(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)
	settings := Settings{StartHour: 14, EndHour: 17, SlotInterval: 60}
	bookings := []Booking{{Date: "2024-06-01", Time: "15:00"}}

	agenda, err := BuildAgenda("2024-06-01", settings, nil, bookings, now)
	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Time: "14:00", Status: SlotPassed},
		{Time: "15:00", Status: SlotOccupied},
		{Time: "16:00", Status: SlotAvailable},
	}, agenda)
}

func TestCanBook(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local)
	settings := Settings{StartHour: 9, EndHour: 18, SlotInterval: 60}

	tests := []struct {
		name       string
		date       string
		slot       string
		exceptions map[string]Exception
		bookings   []Booking
		want       bool
	}{
		{"free future slot", "2024-06-02", "10:00", nil, nil, true},
		{"occupied slot", "2024-06-02", "10:00", nil, []Booking{{Date: "2024-06-02", Time: "10:00"}}, false},
		{"cancelled booking frees the slot", "2024-06-02", "10:00", nil, []Booking{{Date: "2024-06-02", Time: "10:00", Cancelled: true}}, true},
		{"closed date", "2024-06-02", "10:00", map[string]Exception{"2024-06-02": {Closed: true}}, nil, false},
		{"passed slot today", "2024-06-01", "10:00", nil, nil, false},
		{"time off the slot grid", "2024-06-02", "10:17", nil, nil, false},
		{"time outside hours", "2024-06-02", "22:00", nil, nil, false},
		{"timestamped request date is normalized", "2024-06-02T00:00:00Z", "10:00", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanBook(tt.date, tt.slot, settings, tt.exceptions, tt.bookings, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-06-01", "2024-06-01"},
		{"2024-06-01T10:00:00.000Z", "2024-06-01"},
		{"2024-06-01T10:00:00-03:00", "2024-06-01"},
		{"2024-06-01 10:00:00", "2024-06-01"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDate(tt.in))
	}
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("09:00"))
	assert.True(t, ValidClock("23:45"))
	assert.False(t, ValidClock("9:00"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("09:60"))
	assert.False(t, ValidClock("0900"))
	assert.False(t, ValidClock(""))
}
