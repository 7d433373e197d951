package models

import (
	"time"
)

// User is a login account: the shop owner, a barber or a client who
// books online. Access is decided by the attached role.
type User struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name"`
	Email        string        `json:"email" gorm:"unique"`
	Password     string        `json:"password,omitempty"`
	Phone        string        `json:"phone" gorm:"size:20"`
	RoleID       uint          `json:"role_id"`
	Role         Role          `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:BarberID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
