package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/db"
	"github.com/localserve/local-service-finder/models"
	"github.com/localserve/local-service-finder/utils"
)

// StartJobs schedules the daily availability-window job. Every night each
// provider's availability is extended so the next 7 days always have slot
// rows to book against.
func StartJobs(database *gorm.DB) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		if err := ExtendAvailabilityWindows(database); err != nil {
			log.Printf("availability window job: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron scheduler started for availability windows")
	return c
}

// ExtendAvailabilityWindows tops up every provider's rolling 7-day window.
func ExtendAvailabilityWindows(database *gorm.DB) error {
	dates := utils.RollingDates(time.Now(), 7)

	var providers []models.Provider
	if err := database.Find(&providers).Error; err != nil {
		return err
	}
	for _, provider := range providers {
		if err := db.SeedAvailability(database, provider.ID, dates); err != nil {
			return err
		}
	}
	log.Printf("Extended availability windows for %d providers", len(providers))
	return nil
}
