package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsSlotConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"slot race sentinel", errSlotTaken, true},
		{"wrapped sentinel", errors.Join(errors.New("transaction failed"), errSlotTaken), true},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"postgres unique violation text", errors.New(`duplicate key value violates unique constraint "uniq_active_booking"`), true},
		{"sqlite unique violation text", errors.New("UNIQUE constraint failed: appointments.date, appointments.time"), true},
		{"connection failure is not a conflict", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), false},
		{"context deadline is not a conflict", errors.New("context deadline exceeded"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSlotConflict(tt.err))
		})
	}
}
