package models

import (
	"gorm.io/gorm"
)

// Service is an item of the barbershop catalog (cut, beard, combo...).
type Service struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" gorm:"default:30"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active" gorm:"default:true"`
}
