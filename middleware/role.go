package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/utils"
)

// RequireRole admits only callers whose token carries one of the given roles.
// Must run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return unauthorized(c, "User role not found in context")
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You don't have the required role to perform this action",
		})
	}
}
