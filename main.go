package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"Attendance-Roster-Backend/config"
	"Attendance-Roster-Backend/pkg/paseto"
	"Attendance-Roster-Backend/router"
	"Attendance-Roster-Backend/seeder"

	_ "time/tzdata"
)

func main() {
	cfg := config.LoadConfig()

	if err := paseto.Init(cfg.PasetoSecret); err != nil {
		log.Fatalf("Failed to initialize token signing: %v", err)
	}

	config.MongoConnect()
	config.InitDatabase()
	defer config.DisconnectDB()

	seeder.SeedAdminUser(cfg)

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
