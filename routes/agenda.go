package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/controllers"
)

// SetupAgendaRoutes configures the public agenda routes. They stay
// open: the client booking page reads them before any login.
func SetupAgendaRoutes(app *fiber.App) {
	agenda := app.Group("/agenda")
	agenda.Get("/:date", controllers.GetAgenda)
	agenda.Get("/:date/available", controllers.GetAvailableSlots)
}
