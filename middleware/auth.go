package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/localserve/local-service-finder/redis"
	"github.com/localserve/local-service-finder/utils"
)

// Protected verifies the bearer token and places userID, email and role into
// the request locals. Revoked tokens (blacklisted jti) are rejected.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   utils.JWTSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c, "Invalid token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "Invalid token claims")
			}

			if jti, ok := claims["jti"].(string); ok && redis.IsBlacklisted(jti) {
				return unauthorized(c, "Token has been revoked")
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return unauthorized(c, "Invalid user ID in token")
			}
			role, _ := claims["role"].(string)
			email, _ := claims["email"].(string)

			c.Locals("userID", userID)
			c.Locals("email", email)
			c.Locals("role", role)
			return c.Next()
		},
	})
}

// extractUserID handles the formats the id claim shows up in after JSON
// round-trips.
func extractUserID(claims jwt.MapClaims) (uint, error) {
	switch v := claims["id"].(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	case nil:
		return 0, fmt.Errorf("no ID found in claims")
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Message: msg,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Message: "Invalid or expired token",
		Error:   err.Error(),
	})
}
