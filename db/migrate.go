package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
)

func Migrate(database *gorm.DB) error {
	err := database.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Provider{},
		&models.ProviderSpecialty{},
		&models.Availability{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	log.Println("✅ Migrations applied successfully!")
	return nil
}
