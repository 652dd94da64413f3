package services

import "errors"

var (
	ErrProviderNotFound  = errors.New("provider not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSlotUnavailable   = errors.New("time slot is not available")
	ErrSlotBooked        = errors.New("time slot is held by an active booking")
	ErrMissingFields     = errors.New("all fields are required")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("not authorized")
	ErrNotAProvider      = errors.New("not a provider")
)
