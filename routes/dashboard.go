package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/controllers"
	"github.com/barberflow/barberflow/middleware"
)

// SetupDashboardRoutes configures the barber dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())
	dashboard.Get("/overview", middleware.RequirePermission("dashboard", "read"), controllers.GetDashboardOverview)
}
