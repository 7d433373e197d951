package models

import (
	"gorm.io/gorm"
)

// Client is a barbershop customer record kept by the shop, independent
// of whether the person has a login.
type Client struct {
	gorm.Model
	Name         string        `json:"name"`
	Phone        string        `json:"phone" gorm:"size:20;index"`
	Email        string        `json:"email"`
	Notes        string        `json:"notes" gorm:"size:255"`
	UserID       *uint         `json:"user_id"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:ClientID"`
}
