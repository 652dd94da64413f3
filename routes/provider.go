package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/controllers"
	"github.com/localserve/local-service-finder/middleware"
	"github.com/localserve/local-service-finder/models"
)

// SetupProviderRoutes configures all provider related routes
func SetupProviderRoutes(app *fiber.App, pc *controllers.ProviderController) {
	provider := app.Group("/providers")

	// Public browsing
	provider.Get("/", pc.List)

	// Provider self-service
	provider.Post("/onboard", middleware.Protected(), middleware.RequireRole(models.RoleProvider), pc.Onboard)
	provider.Put("/availability", middleware.Protected(), middleware.RequireRole(models.RoleProvider), pc.UpsertAvailability)
	provider.Get("/me/dashboard", middleware.Protected(), middleware.RequireRole(models.RoleProvider, models.RoleAdmin), pc.Dashboard)

	provider.Get("/:id", pc.Get)
}
