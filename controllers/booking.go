package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/localserve/local-service-finder/models"
	"github.com/localserve/local-service-finder/services"
	"github.com/localserve/local-service-finder/utils"
)

type BookingController struct {
	svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{svc: svc}
}

// Create books a provider's (date, time) for the authenticated customer.
func (bc *BookingController) Create(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var input services.CreateBookingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	booking, err := bc.svc.Create(userID, input)
	if err != nil {
		return respondErr(c, err)
	}

	sendBookingEmails(booking)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// List returns the caller's bookings, as customer by default or as provider
// via ?role=provider, optionally filtered by ?status=.
func (bc *BookingController) List(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	role := c.Query("role", models.RoleCustomer)
	status := models.BookingStatus(c.Query("status"))

	bookings, err := bc.svc.List(userID, role, status)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

func (bc *BookingController) Get(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking ID",
		})
	}

	booking, err := bc.svc.Get(uint(id), userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"booking": booking,
	})
}

// UpdateStatus applies a status transition and/or sets the total amount.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking ID",
		})
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	booking, err := bc.svc.UpdateStatus(uint(id), userID, input)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Booking updated successfully",
		"booking": booking,
	})
}

// Delete removes a booking permanently and frees its slot.
func (bc *BookingController) Delete(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking ID",
		})
	}

	if err := bc.svc.Delete(uint(id), userID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Booking deleted successfully",
	})
}

// sendBookingEmails notifies both parties of a new booking. Delivery is
// best-effort; failures are logged, never surfaced to the caller.
func sendBookingEmails(booking *models.Booking) {
	customerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking has been created and is awaiting confirmation.</p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
	`, booking.Customer.Name, booking.Provider.User.Name,
		booking.Date, booking.Time, booking.ServiceAddress)
	if err := utils.SendEmail(booking.Customer.Email, "Booking Created", customerBody); err != nil {
		log.Printf("booking %d: customer email: %v", booking.ID, err)
	}

	providerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new booking request.</p>
		<ul>
			<li><strong>Customer:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Address:</strong> %s</li>
			<li><strong>Problem:</strong> %s</li>
		</ul>
	`, booking.Provider.User.Name, booking.Customer.Name,
		booking.Date, booking.Time, booking.ServiceAddress, booking.ProblemDescription)
	if err := utils.SendEmail(booking.Provider.User.Email, "New Booking Request", providerBody); err != nil {
		log.Printf("booking %d: provider email: %v", booking.ID, err)
	}
}
