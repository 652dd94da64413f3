package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/services"
	"github.com/localserve/local-service-finder/utils"
)

// respondErr maps domain errors to HTTP statuses. Unexpected persistence
// failures are logged and hidden behind a generic 500; client-input errors
// are returned as-is and not logged.
func respondErr(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrProviderNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotAProvider):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrSlotBooked):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition):
		status = fiber.StatusBadRequest
	default:
		log.Printf("internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Internal server error",
		})
	}
	return c.Status(status).JSON(utils.ErrorResponse{Message: err.Error()})
}

func callerID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}
