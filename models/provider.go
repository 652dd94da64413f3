package models

import (
	"gorm.io/gorm"
)

// Provider is the service-provider profile. Exactly one per provider-role user.
type Provider struct {
	gorm.Model
	UserID          uint                `json:"user_id" gorm:"uniqueIndex"`
	User            User                `json:"user" gorm:"foreignKey:UserID"`
	Bio             string              `json:"bio"`
	HourlyRate      float64             `json:"hourly_rate"`
	YearsExperience int                 `json:"years_experience"`
	Location        string              `json:"location"`
	Verified        bool                `json:"verified"`
	Featured        bool                `json:"featured"`
	Rating          float64             `json:"rating"`
	ReviewCount     int                 `json:"review_count"`
	Categories      []Category          `json:"categories,omitempty" gorm:"many2many:provider_categories;"`
	Specialties     []ProviderSpecialty `json:"specialties,omitempty" gorm:"foreignKey:ProviderID"`
	Availability    []Availability      `json:"availability,omitempty" gorm:"foreignKey:ProviderID"`
	Bookings        []Booking           `json:"bookings,omitempty" gorm:"foreignKey:ProviderID"`
	Reviews         []Review            `json:"reviews,omitempty" gorm:"foreignKey:ProviderID"`
}

type ProviderSpecialty struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	ProviderID uint   `json:"provider_id" gorm:"index"`
	Specialty  string `json:"specialty"`
}
