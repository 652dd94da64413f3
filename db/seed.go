package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
	"github.com/localserve/local-service-finder/utils"
)

var seedCategories = []models.Category{
	{Name: "Plumbing", Slug: "plumbing", Description: "Plumbing services", Icon: "Wrench"},
	{Name: "Electrical", Slug: "electrical", Description: "Electrical services", Icon: "Zap"},
	{Name: "Cleaning", Slug: "cleaning", Description: "Cleaning services", Icon: "Sparkles"},
	{Name: "Handyman", Slug: "handyman", Description: "Handyman services", Icon: "Hammer"},
}

type seedProvider struct {
	name        string
	email       string
	category    string
	bio         string
	hourlyRate  float64
	years       int
	location    string
	specialties []string
	verified    bool
	featured    bool
}

var seedProviders = []seedProvider{
	{
		name: "Mike Rodriguez", email: "mike@example.com", category: "plumbing",
		bio: "Licensed plumber handling repairs, installs and emergencies.",
		hourlyRate: 85, years: 12, location: "Brooklyn, NY",
		specialties: []string{"Leak repair", "Water heaters"}, verified: true, featured: true,
	},
	{
		name: "Sarah Chen", email: "sarah@example.com", category: "electrical",
		bio: "Residential electrician, panel upgrades and lighting.",
		hourlyRate: 95, years: 8, location: "Queens, NY",
		specialties: []string{"Panel upgrades", "Smart home wiring"}, verified: true,
	},
	{
		name: "James Walker", email: "james@example.com", category: "handyman",
		bio: "General repairs, furniture assembly, small renovations.",
		hourlyRate: 55, years: 6, location: "Manhattan, NY",
		specialties: []string{"Furniture assembly", "Drywall"},
	},
}

// Seed populates demo data: categories, a customer, and providers with a
// rolling 7-day availability window of hourly slots.
func Seed(database *gorm.DB) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for i := range seedCategories {
			if err := tx.Where("slug = ?", seedCategories[i].Slug).
				FirstOrCreate(&seedCategories[i]).Error; err != nil {
				return err
			}
		}

		password, err := utils.HashPassword("Password1")
		if err != nil {
			return err
		}

		customer := models.User{
			Name: "Demo Customer", Email: "customer@example.com",
			Password: password, Role: models.RoleCustomer,
		}
		if err := tx.Where("email = ?", customer.Email).FirstOrCreate(&customer).Error; err != nil {
			return err
		}

		for _, sp := range seedProviders {
			user := models.User{
				Name: sp.name, Email: sp.email, Password: password,
				Role:   models.RoleProvider,
				Avatar: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", sp.name),
			}
			if err := tx.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
				return err
			}

			provider := models.Provider{
				UserID: user.ID, Bio: sp.bio, HourlyRate: sp.hourlyRate,
				YearsExperience: sp.years, Location: sp.location,
				Verified: sp.verified, Featured: sp.featured,
			}
			if err := tx.Where("user_id = ?", user.ID).FirstOrCreate(&provider).Error; err != nil {
				return err
			}

			var category models.Category
			if err := tx.Where("slug = ?", sp.category).First(&category).Error; err != nil {
				return err
			}
			if err := tx.Model(&provider).Association("Categories").Append(&category); err != nil {
				return err
			}

			for _, s := range sp.specialties {
				spec := models.ProviderSpecialty{ProviderID: provider.ID, Specialty: s}
				if err := tx.Where("provider_id = ? AND specialty = ?", provider.ID, s).
					FirstOrCreate(&spec).Error; err != nil {
					return err
				}
			}

			if err := SeedAvailability(tx, provider.ID, utils.RollingDates(time.Now(), 7)); err != nil {
				return err
			}
		}

		log.Printf("✅ Seeded %d categories and %d providers with availability",
			len(seedCategories), len(seedProviders))
		return nil
	})
}

// SeedAvailability ensures an Availability row with the default slot times
// exists for every given date. Existing rows and their slots are untouched.
func SeedAvailability(tx *gorm.DB, providerID uint, dates []string) error {
	for _, date := range dates {
		availability := models.Availability{ProviderID: providerID, Date: date}
		if err := tx.Where("provider_id = ? AND date = ?", providerID, date).
			FirstOrCreate(&availability).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.TimeSlot{}).
			Where("availability_id = ?", availability.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for i, t := range utils.DefaultSlotTimes {
			slot := models.TimeSlot{
				AvailabilityID: availability.ID,
				Time:           t,
				Available:      true,
				IsFastest:      i == 0,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
