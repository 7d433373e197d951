package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/barberflow/barberflow/cron"

	"github.com/barberflow/barberflow/db"

	"github.com/barberflow/barberflow/redis"

	"github.com/barberflow/barberflow/routes"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate()
		return
	}

	app := fiber.New()
	db.Init()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Barberflow API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupClientRoutes(app)
	routes.SetupAgendaRoutes(app)
	routes.SetupSettingsRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupDashboardRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
