package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
)

// BookingService runs the booking lifecycle: creating bookings against
// availability, validating role-gated status transitions, and keeping slot
// availability in sync on cancellation and deletion.
type BookingService struct {
	bookings  BookingStore
	providers ProviderStore
	slots     SlotStore
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		bookings:  &gormBookingStore{db: db},
		providers: &gormProviderStore{db: db},
		slots:     &gormSlotStore{db: db},
	}
}

type CreateBookingInput struct {
	ProviderID         uint   `json:"provider_id"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	ServiceAddress     string `json:"service_address"`
	ProblemDescription string `json:"problem_description"`
}

type UpdateStatusInput struct {
	Status      models.BookingStatus `json:"status"`
	TotalAmount *float64             `json:"total_amount"`
}

// Create claims the matching slot (if one is seeded) and inserts a pending
// booking. The claim is a conditional update, so of two concurrent requests
// for the same slot exactly one succeeds.
func (s *BookingService) Create(customerID uint, in CreateBookingInput) (*models.Booking, error) {
	if in.ProviderID == 0 || in.Date == "" || in.Time == "" ||
		in.ServiceAddress == "" || in.ProblemDescription == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.providers.ByID(in.ProviderID); err != nil {
		return nil, err
	}

	slot, err := s.slots.FindSlot(in.ProviderID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	var slotID *uint
	if slot != nil {
		if !slot.Available {
			return nil, ErrSlotUnavailable
		}
		if err := s.slots.Claim(slot.ID); err != nil {
			return nil, err
		}
		slotID = &slot.ID
	}

	booking := &models.Booking{
		CustomerID:         customerID,
		ProviderID:         in.ProviderID,
		Date:               in.Date,
		Time:               in.Time,
		ServiceAddress:     in.ServiceAddress,
		ProblemDescription: in.ProblemDescription,
		Status:             models.StatusPending,
		TimeSlotID:         slotID,
	}
	if err := s.bookings.Create(booking); err != nil {
		if slotID != nil {
			// Hand the claim back; the booking never existed.
			if rbErr := s.slots.MarkAvailable(*slotID); rbErr != nil {
				log.Printf("booking create: releasing slot %d: %v", *slotID, rbErr)
			}
		}
		return nil, err
	}

	return s.bookings.ByID(booking.ID)
}

// UpdateStatus applies a role-gated status transition and, independently,
// updates the total amount when supplied. Moving into cancelled frees the
// claimed slot.
func (s *BookingService) UpdateStatus(bookingID, callerID uint, in UpdateStatusInput) (*models.Booking, error) {
	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}

	isCustomer := booking.CustomerID == callerID
	isProvider := booking.Provider.UserID == callerID
	if !isCustomer && !isProvider {
		return nil, fmt.Errorf("%w to update this booking", ErrForbidden)
	}

	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		if !booking.CanTransition(in.Status) {
			return nil, fmt.Errorf("%w: cannot move from %s to %s",
				ErrInvalidTransition, booking.Status, in.Status)
		}
		if models.ProviderOnly(in.Status) && !isProvider {
			return nil, forbiddenTransition(in.Status)
		}
		booking.Status = in.Status
	}
	if in.TotalAmount != nil {
		booking.TotalAmount = in.TotalAmount
	}

	if err := s.bookings.Save(booking); err != nil {
		return nil, err
	}

	if in.Status == models.StatusCancelled && booking.TimeSlotID != nil {
		if err := s.slots.MarkAvailable(*booking.TimeSlotID); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

func forbiddenTransition(next models.BookingStatus) error {
	switch next {
	case models.StatusConfirmed:
		return fmt.Errorf("%w: only providers can confirm bookings", ErrForbidden)
	case models.StatusInProgress:
		return fmt.Errorf("%w: only providers can start jobs", ErrForbidden)
	default:
		return fmt.Errorf("%w: only providers can complete bookings", ErrForbidden)
	}
}

// Delete removes a booking permanently. Only the owning customer may delete.
// A slot still held by the booking is freed first; a cancelled booking
// already gave its slot back, so there is nothing to free then.
func (s *BookingService) Delete(bookingID, callerID uint) error {
	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID != callerID {
		return fmt.Errorf("%w to delete this booking", ErrForbidden)
	}

	if booking.TimeSlotID != nil && booking.Status != models.StatusCancelled {
		if err := s.slots.MarkAvailable(*booking.TimeSlotID); err != nil {
			return err
		}
	}

	return s.bookings.Delete(booking.ID)
}

// Get returns the booking when the caller is its customer or the user owning
// its provider profile.
func (s *BookingService) Get(bookingID, callerID uint) (*models.Booking, error) {
	booking, err := s.bookings.ByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != callerID && booking.Provider.UserID != callerID {
		return nil, fmt.Errorf("%w to view this booking", ErrForbidden)
	}
	return booking, nil
}

// List returns the caller's bookings, as customer by default or as provider
// when role is "provider". Listing as provider without a provider profile is
// rejected.
func (s *BookingService) List(callerID uint, role string, status models.BookingStatus) ([]models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if role == models.RoleProvider {
		provider, err := s.providers.ByUserID(callerID)
		if err != nil {
			if errors.Is(err, ErrProviderNotFound) {
				return nil, ErrNotAProvider
			}
			return nil, err
		}
		return s.bookings.ListByProvider(provider.ID, status)
	}
	return s.bookings.ListByCustomer(callerID, status)
}
