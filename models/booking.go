package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Valid reports whether s is one of the five defined statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking is a customer's claim on a provider's (date, time). TimeSlotID is
// set when the claim consumed a seeded slot; it stays nil when no slot record
// existed for that day, in which case cancel/delete have nothing to free.
type Booking struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	CustomerID         uint          `json:"customer_id" gorm:"index"`
	Customer           User          `json:"customer" gorm:"foreignKey:CustomerID"`
	ProviderID         uint          `json:"provider_id" gorm:"index"`
	Provider           Provider      `json:"provider" gorm:"foreignKey:ProviderID"`
	Date               string        `json:"date"`
	Time               string        `json:"time"`
	ServiceAddress     string        `json:"service_address"`
	ProblemDescription string        `json:"problem_description"`
	Status             BookingStatus `json:"status"`
	TotalAmount        *float64      `json:"total_amount"`
	TimeSlotID         *uint         `json:"time_slot_id,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether moving from the booking's current status to
// next is defined by the lifecycle:
//
//	pending -> confirmed -> in_progress -> completed
//	pending/confirmed -> cancelled
//
// completed and cancelled are terminal. An in_progress booking cannot be
// cancelled.
func (b *Booking) CanTransition(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

// ProviderOnly reports whether the target status may be set only by the user
// owning the booking's provider profile.
func ProviderOnly(next BookingStatus) bool {
	return next == StatusConfirmed || next == StatusInProgress || next == StatusCompleted
}
