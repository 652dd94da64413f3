package controllers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/db"
	"github.com/localserve/local-service-finder/utils"
)

// SeedHandler loads demo data. Enabled only when ALLOW_SEED=true so it never
// runs against a production database by accident.
func SeedHandler(database *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if os.Getenv("ALLOW_SEED") != "true" {
			return c.SendStatus(fiber.StatusNotFound)
		}
		if err := db.Seed(database); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to seed database",
				Error:   err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "Database seeded successfully",
		})
	}
}
