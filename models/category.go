package models

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name        string     `json:"name" gorm:"unique"`
	Slug        string     `json:"slug" gorm:"uniqueIndex"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Providers   []Provider `json:"providers,omitempty" gorm:"many2many:provider_categories;"`
}
