package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCan(t *testing.T) {
	barber := Role{
		Name: RoleBarber,
		Permissions: []Permission{
			{Resource: "appointments", Action: "create"},
			{Resource: "appointments", Action: "read"},
			{Resource: "services", Action: "update"},
		},
	}

	assert.True(t, barber.Can("appointments", "create"))
	assert.True(t, barber.Can("services", "update"))
	assert.False(t, barber.Can("services", "delete"))
	assert.False(t, barber.Can("dashboard", "read"))

	// Without preloaded permissions nothing is granted.
	assert.False(t, Role{Name: RoleClient}.Can("appointments", "create"))
}
