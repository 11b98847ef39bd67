package router

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"Attendance-Roster-Backend/config/middleware"
	"Attendance-Roster-Backend/handlers"
	"Attendance-Roster-Backend/repository"
)

func SetupRoutes(app *fiber.App) {
	log.Println("Registering application routes...")

	userRepo := repository.NewUserRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	rosterRepo := repository.NewRosterRepository()
	leaveRepo := repository.NewLeaveRepository()

	authHandler := handlers.NewAuthHandler(userRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo)
	rosterHandler := handlers.NewRosterHandler(rosterRepo)
	leaveHandler := handlers.NewLeaveHandler(leaveRepo, userRepo)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Attendance Roster API",
			"status":  "running",
		})
	})

	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.Register)

	// Attendance routes
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware())
	attendanceGroup.Get("/", attendanceHandler.GetMonthly)

	adminAttendanceGroup := attendanceGroup.Group("/", middleware.AdminMiddleware())
	adminAttendanceGroup.Post("/bulkUpload", attendanceHandler.BulkUpload)
	adminAttendanceGroup.Patch("/:empId/:date", attendanceHandler.UpdateAttendance)

	// Roster routes
	rosterGroup := api.Group("/rosters", middleware.AuthMiddleware())
	rosterGroup.Get("/", rosterHandler.GetAll)
	rosterGroup.Get("/:empId", rosterHandler.GetByEmployee)

	adminRosterGroup := rosterGroup.Group("/", middleware.AdminMiddleware())
	adminRosterGroup.Post("/bulkUpload", rosterHandler.BulkUpload)
	adminRosterGroup.Post("/create", rosterHandler.Create)

	// Leave request routes
	leaveGroup := api.Group("/leaves", middleware.AuthMiddleware())
	leaveGroup.Post("/", leaveHandler.Create)
	leaveGroup.Get("/my", leaveHandler.GetMyLeaves)

	adminLeaveGroup := leaveGroup.Group("/", middleware.AdminMiddleware())
	adminLeaveGroup.Get("/", leaveHandler.GetAll)
	adminLeaveGroup.Put("/:id/status", leaveHandler.UpdateStatus)

	log.Println("All application routes registered.")
}
