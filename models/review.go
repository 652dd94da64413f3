package models

import (
	"gorm.io/gorm"
)

// Review is read-only in this service; it is displayed on provider profiles.
type Review struct {
	gorm.Model
	ProviderID uint   `json:"provider_id" gorm:"index"`
	UserID     uint   `json:"user_id"`
	User       User   `json:"user" gorm:"foreignKey:UserID"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}
