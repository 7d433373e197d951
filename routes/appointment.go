package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/controllers"
	"github.com/barberflow/barberflow/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/", middleware.Protected(), middleware.RequirePermission("appointments", "read"), controllers.GetAllAppointments)
	appointment.Get("/:id", middleware.Protected(), middleware.RequirePermission("appointments", "read"), controllers.GetAppointment)
	appointment.Post("/", middleware.Protected(), middleware.RequirePermission("appointments", "create"), controllers.CreateAppointment)
	appointment.Patch("/:id", middleware.Protected(), middleware.RequirePermission("appointments", "update"), controllers.UpdateAppointment)
	appointment.Patch("/:id/status", middleware.Protected(), middleware.RequirePermission("appointments", "update"), controllers.UpdateAppointmentStatus)
	appointment.Post("/:id/cancel", middleware.Protected(), middleware.RequirePermission("appointments", "delete"), controllers.CancelAppointment)
}
