package router

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"Attendify-Backend/config/middleware"
	"Attendify-Backend/handlers"
	"Attendify-Backend/repository"
)

func SetupRoutes(app *fiber.App) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	// Inisialisasi Repositories
	userRepo := repository.NewUserRepository()
	adjustmentRepo := repository.NewAdjustmentRepository()
	holidayRepo := repository.NewHolidayRepository()

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(userRepo)
	adjustmentHandler := handlers.NewAdjustmentHandler(adjustmentRepo)
	holidayHandler := handlers.NewHolidayHandler(holidayRepo)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Attendify API",
			"status":  "running",
		})
	})

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.Register)

	// Rute kalender akuntansi waktu kerja
	adjustmentGroup := api.Group("/adjustments", middleware.AuthMiddleware())
	adjustmentGroup.Get("/", adjustmentHandler.GetAdjustments)
	adjustmentGroup.Post("/", adjustmentHandler.CreateAdjustment)
	adjustmentGroup.Delete("/", adjustmentHandler.DeleteAdjustment)

	holidayGroup := api.Group("/holidays", middleware.AuthMiddleware())
	holidayGroup.Get("/", holidayHandler.GetHolidays)
	holidayGroup.Post("/", holidayHandler.CreateHoliday)
	holidayGroup.Delete("/", holidayHandler.DeleteHoliday)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Routes yang tersedia:")
	log.Println("- POST /api/v1/auth/login")
	log.Println("- POST /api/v1/auth/register (admin only)")
	log.Println("- GET /api/v1/adjustments?year&month (protected)")
	log.Println("- POST /api/v1/adjustments (protected)")
	log.Println("- DELETE /api/v1/adjustments?id (protected)")
	log.Println("- GET /api/v1/holidays?year&month (protected)")
	log.Println("- POST /api/v1/holidays (protected)")
	log.Println("- DELETE /api/v1/holidays?id (protected)")
}
