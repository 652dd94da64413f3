package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/localserve/local-service-finder/controllers"
	"github.com/localserve/local-service-finder/cron"
	"github.com/localserve/local-service-finder/db"
	"github.com/localserve/local-service-finder/redis"
	"github.com/localserve/local-service-finder/routes"
	"github.com/localserve/local-service-finder/services"
)

func main() {
	database, err := db.Init()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	redis.InitRedis()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	authController := controllers.NewAuthController(database)
	categoryController := controllers.NewCategoryController(database)
	providerController := controllers.NewProviderController(database)
	bookingController := controllers.NewBookingController(services.NewBookingService(database))

	routes.SetupAuthRoutes(app, authController)
	routes.SetupCategoryRoutes(app, categoryController)
	routes.SetupProviderRoutes(app, providerController)
	routes.SetupBookingRoutes(app, bookingController)
	app.Post("/seed", controllers.SeedHandler(database))

	cron.StartJobs(database)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
