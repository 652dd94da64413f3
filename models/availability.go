package models

import (
	"time"
)

// Availability is one provider's bookable day. One row per (provider, date).
type Availability struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	ProviderID uint       `json:"provider_id" gorm:"uniqueIndex:idx_provider_date"`
	Date       string     `json:"date" gorm:"uniqueIndex:idx_provider_date"` // "2006-01-02"
	TimeSlots  []TimeSlot `json:"time_slots,omitempty" gorm:"foreignKey:AvailabilityID"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TimeSlot is a single bookable (date, time) unit. Available is written only
// through the slot store so a claimed slot cannot be double-booked.
type TimeSlot struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	AvailabilityID uint   `json:"availability_id" gorm:"index"`
	Time           string `json:"time"` // "15:04" in 24h
	Available      bool   `json:"available" gorm:"default:true"`
	IsFastest      bool   `json:"is_fastest"`
}
