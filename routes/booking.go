package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/controllers"
	"github.com/localserve/local-service-finder/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App, bc *controllers.BookingController) {
	booking := app.Group("/bookings", middleware.Protected())
	booking.Post("/", bc.Create)
	booking.Get("/", bc.List)
	booking.Get("/:id", bc.Get)
	booking.Patch("/:id", bc.UpdateStatus)
	booking.Delete("/:id", bc.Delete)
}
