package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/controllers"
	"github.com/barberflow/barberflow/middleware"
)

// SetupClientRoutes configures the client book routes (barber-facing)
func SetupClientRoutes(app *fiber.App) {
	client := app.Group("/clients", middleware.Protected())
	client.Get("/", middleware.RequirePermission("clients", "read"), controllers.GetAllClients)
	client.Get("/:id", middleware.RequirePermission("clients", "read"), controllers.GetClient)
	client.Post("/", middleware.RequirePermission("clients", "create"), controllers.CreateClient)
	client.Patch("/:id", middleware.RequirePermission("clients", "update"), controllers.UpdateClient)
	client.Delete("/:id", middleware.RequirePermission("clients", "delete"), controllers.DeleteClient)
}
