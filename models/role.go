package models

import (
	"time"

	"gorm.io/gorm"
)

// The three roles the shop runs on, seeded at migration time. Extra
// roles can still be created through the RBAC endpoints.
const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
	RoleClient = "client"
)

// Role groups permissions for the shop's access control. Every user
// carries exactly one role.
type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	Permissions []Permission   `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}

// Can reports whether the role grants action on resource. Permissions
// must be preloaded; an empty slice grants nothing.
func (r Role) Can(resource, action string) bool {
	for _, p := range r.Permissions {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}
	return false
}
