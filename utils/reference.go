package utils

import (
	"github.com/google/uuid"
)

// NewBookingReference generates the opaque code clients use to look up
// or cancel a booking without an account.
func NewBookingReference() string {
	return uuid.NewString()
}
