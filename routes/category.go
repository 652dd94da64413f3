package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/controllers"
	"github.com/localserve/local-service-finder/middleware"
	"github.com/localserve/local-service-finder/models"
)

// SetupCategoryRoutes configures all category related routes
func SetupCategoryRoutes(app *fiber.App, cc *controllers.CategoryController) {
	category := app.Group("/categories")
	category.Get("/", cc.List)
	category.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), cc.Create)
}
