package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/barberflow/barberflow/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.ShopSettings{},
		&models.ScheduleException{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	if err := ApplyBookingConflictIndex(DB); err != nil {
		log.Fatal("Failed to create booking conflict index: ", err)
	}

	seedDefaults()

	fmt.Println("✅ Migrations applied successfully!")
}

// ApplyBookingConflictIndex enforces slot mutual exclusion in the
// store: at most one non-cancelled appointment per (date, time). The
// in-memory availability check is advisory; this index is the
// authority, and a lost booking race surfaces as a unique violation.
func ApplyBookingConflictIndex(db *gorm.DB) error {
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_booking
		ON appointments (date, time)
		WHERE status <> 'cancelled' AND deleted_at IS NULL
	`).Error
}

func seedDefaults() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Shop owner with full access"},
		{Name: models.RoleBarber, Description: "Barber managing the agenda and clients"},
		{Name: models.RoleClient, Description: "Client booking appointments"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	permissions := []models.Permission{
		{Name: "create_appointment", Description: "Book appointments", Resource: "appointments", Action: "create"},
		{Name: "read_appointments", Description: "View appointments", Resource: "appointments", Action: "read"},
		{Name: "update_appointment", Description: "Update appointments", Resource: "appointments", Action: "update"},
		{Name: "delete_appointment", Description: "Cancel appointments", Resource: "appointments", Action: "delete"},

		{Name: "create_service", Description: "Create services", Resource: "services", Action: "create"},
		{Name: "update_service", Description: "Update services", Resource: "services", Action: "update"},
		{Name: "delete_service", Description: "Delete services", Resource: "services", Action: "delete"},

		{Name: "create_client", Description: "Register clients", Resource: "clients", Action: "create"},
		{Name: "read_clients", Description: "View clients", Resource: "clients", Action: "read"},
		{Name: "update_client", Description: "Update clients", Resource: "clients", Action: "update"},
		{Name: "delete_client", Description: "Delete clients", Resource: "clients", Action: "delete"},

		{Name: "read_settings", Description: "View shop settings", Resource: "settings", Action: "read"},
		{Name: "update_settings", Description: "Change shop hours and closures", Resource: "settings", Action: "update"},

		{Name: "read_dashboard", Description: "View the financial dashboard", Resource: "dashboard", Action: "read"},
	}
	for _, permission := range permissions {
		var existing models.Permission
		if DB.Where("name = ?", permission.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&permission)
		}
	}

	// Admin gets everything, barbers run the shop day to day.
	var adminRole models.Role
	if DB.Where("name = ?", models.RoleAdmin).First(&adminRole).RowsAffected > 0 {
		var all []models.Permission
		DB.Find(&all)
		DB.Model(&adminRole).Association("Permissions").Clear()
		DB.Model(&adminRole).Association("Permissions").Append(all)
	}

	var barberRole models.Role
	if DB.Where("name = ?", models.RoleBarber).First(&barberRole).RowsAffected > 0 {
		var barberPermissions []models.Permission
		DB.Where("resource IN ?", []string{"appointments", "services", "clients", "settings", "dashboard"}).
			Find(&barberPermissions)
		DB.Model(&barberRole).Association("Permissions").Clear()
		DB.Model(&barberRole).Association("Permissions").Append(barberPermissions)
	}

	var clientRole models.Role
	if DB.Where("name = ?", models.RoleClient).First(&clientRole).RowsAffected > 0 {
		var clientPermissions []models.Permission
		DB.Where("name IN ?", []string{"create_appointment", "read_appointments", "delete_appointment"}).
			Find(&clientPermissions)
		DB.Model(&clientRole).Association("Permissions").Clear()
		DB.Model(&clientRole).Association("Permissions").Append(clientPermissions)
	}

	// One settings row with the shop defaults, Sundays closed.
	var settings models.ShopSettings
	if DB.First(&settings).RowsAffected == 0 {
		DB.Create(&models.ShopSettings{
			StartHour:      9,
			EndHour:        20,
			SlotInterval:   30,
			ClosedWeekdays: "0",
		})
	}
}
