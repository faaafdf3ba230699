package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Attendify-Backend/config"
	"Attendify-Backend/pkg/dateutil"
	util "Attendify-Backend/pkg/utils"
	"Attendify-Backend/repository"
	"Attendify-Backend/router"
	"Attendify-Backend/seeder"

	_ "time/tzdata"
)

func main() {

	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file tidak ditemukan, menggunakan environment variables sistem")
	}

	if os.Getenv("PASETO_SECRET") == "" {
		if key, err := util.GenerateBase64Key(32); err == nil {
			log.Printf("PASETO_SECRET belum di-set, memakai key default pengembangan. Contoh key produksi: PASETO_SECRET=%s", key)
		}
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()

	defer config.DisconnectDB()

	if os.Getenv("RUN_SEEDER") == "true" {
		seeder.SeedAdminUser(repository.NewUserRepository())
		seeder.SeedNationalHolidays(repository.NewHolidayRepository(), time.Now().In(dateutil.WIB).Year())
	}

	app := fiber.New()

	config.SetupCORS(app)

	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("Health Check: http://localhost:%s/", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
