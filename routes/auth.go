package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/controllers"
	"github.com/localserve/local-service-finder/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App, ac *controllers.AuthController) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)
	auth.Post("/refresh", ac.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), ac.Me)
	auth.Post("/me/avatar", middleware.Protected(), ac.UpdateAvatar)
	auth.Post("/logout", middleware.Protected(), ac.Logout)
}
