package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/controllers"
	"github.com/barberflow/barberflow/middleware"
)

// SetupSettingsRoutes configures shop settings and schedule exception
// routes. Reads are public so the booking page can render closed dates.
func SetupSettingsRoutes(app *fiber.App) {
	settings := app.Group("/settings")
	settings.Get("/", controllers.GetShopSettings)
	settings.Patch("/", middleware.Protected(), middleware.RequirePermission("settings", "update"), controllers.UpdateShopSettings)

	settings.Get("/exceptions", controllers.GetExceptions)
	settings.Put("/exceptions/:date", middleware.Protected(), middleware.RequirePermission("settings", "update"), controllers.UpsertException)
	settings.Delete("/exceptions/:date", middleware.Protected(), middleware.RequirePermission("settings", "update"), controllers.DeleteException)
}
