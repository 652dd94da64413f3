package models

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role" gorm:"default:customer"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Provider  *Provider `json:"provider,omitempty" gorm:"foreignKey:UserID"`
	Bookings  []Booking `json:"bookings,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitize strips fields that must never leave the server.
func (u *User) Sanitize() {
	u.Password = ""
}
