package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
	"github.com/localserve/local-service-finder/services"
	"github.com/localserve/local-service-finder/utils"
)

type ProviderController struct {
	db *gorm.DB
}

func NewProviderController(db *gorm.DB) *ProviderController {
	return &ProviderController{db: db}
}

// List returns providers filtered by category, text search, rating and flags.
// Browsing is public.
func (pc *ProviderController) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := pc.db.Model(&models.Provider{})

	if category := c.Query("category"); category != "" && category != "all" {
		query = query.
			Joins("JOIN provider_categories ON provider_categories.provider_id = providers.id").
			Joins("JOIN categories ON categories.id = provider_categories.category_id").
			Where("categories.slug = ?", strings.ToLower(category))
	}
	if minRating, err := strconv.ParseFloat(c.Query("minRating", "0"), 64); err == nil && minRating > 0 {
		query = query.Where("providers.rating >= ?", minRating)
	}
	if c.Query("verified") == "true" {
		query = query.Where("providers.verified = ?", true)
	}
	if c.Query("featured") == "true" {
		query = query.Where("providers.featured = ?", true)
	}
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.
			Joins("JOIN users ON users.id = providers.user_id").
			Where("users.name ILIKE ? OR providers.bio ILIKE ?", like, like)
	}

	switch c.Query("sortBy", "recommended") {
	case "rating":
		query = query.Order("providers.rating desc")
	case "price-low":
		query = query.Order("providers.hourly_rate asc")
	case "price-high":
		query = query.Order("providers.hourly_rate desc")
	case "reviews":
		query = query.Order("providers.review_count desc")
	default:
		query = query.Order("providers.featured desc").Order("providers.rating desc")
	}

	var total int64
	query.Count(&total)

	var providers []models.Provider
	if err := query.
		Preload("User").
		Preload("Categories").
		Preload("Specialties").
		Limit(limit).
		Offset(offset).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	for i := range providers {
		providers[i].User.Sanitize()
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"total":     total,
		"page":      page,
		"limit":     limit,
		"pages":     (int(total) + limit - 1) / limit,
	})
}

// Get returns a full provider profile: categories, specialties, the upcoming
// availability window and recent reviews.
func (pc *ProviderController) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.Provider
	err := pc.db.
		Preload("User").
		Preload("Categories").
		Preload("Specialties").
		Preload("Availability", func(db *gorm.DB) *gorm.DB {
			return db.Where("date >= ?", time.Now().Format(utils.DateLayout)).Order("date asc")
		}).
		Preload("Availability.TimeSlots").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(10)
		}).
		Preload("Reviews.User").
		First(&provider, id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	provider.User.Sanitize()
	for i := range provider.Reviews {
		provider.Reviews[i].User.Sanitize()
	}

	return c.JSON(fiber.Map{
		"provider": provider,
	})
}

type onboardInput struct {
	Bio             string   `json:"bio"`
	HourlyRate      float64  `json:"hourly_rate"`
	YearsExperience int      `json:"years_experience"`
	Location        string   `json:"location"`
	Categories      []string `json:"categories"`
	Specialties     []string `json:"specialties"`
}

// Onboard creates the provider profile for the authenticated provider-role
// user, creating categories on the fly when they don't exist yet.
func (pc *ProviderController) Onboard(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var input onboardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if input.Location == "" || len(input.Categories) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Location and at least one category are required",
		})
	}

	var existing models.Provider
	if pc.db.Where("user_id = ?", userID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Provider profile already exists",
		})
	}

	provider := models.Provider{
		UserID:          userID,
		Bio:             input.Bio,
		HourlyRate:      input.HourlyRate,
		YearsExperience: input.YearsExperience,
		Location:        input.Location,
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&provider).Error; err != nil {
			return err
		}

		for _, name := range input.Categories {
			var category models.Category
			if err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).
				First(&category).Error; err != nil {
				category = models.Category{
					Name:        name,
					Slug:        strings.ReplaceAll(strings.ToLower(name), " ", "-"),
					Description: name + " services",
					Icon:        "Wrench",
				}
				if err := tx.Create(&category).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&provider).Association("Categories").Append(&category); err != nil {
				return err
			}
		}

		for _, s := range input.Specialties {
			if err := tx.Create(&models.ProviderSpecialty{
				ProviderID: provider.ID,
				Specialty:  s,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create provider profile",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Provider profile created successfully",
		"provider": provider,
	})
}

type availabilityInput struct {
	Date  string `json:"date"`
	Times []struct {
		Time      string `json:"time"`
		Available *bool  `json:"available"`
		IsFastest bool   `json:"is_fastest"`
	} `json:"times"`
}

// UpsertAvailability creates or updates one day's slots for the caller's
// provider profile. The Availability row is created lazily; a slot held by an
// active booking cannot be reopened.
func (pc *ProviderController) UpsertAvailability(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var provider models.Provider
	if pc.db.Where("user_id = ?", userID).First(&provider).RowsAffected == 0 {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Not a provider",
		})
	}

	var input availabilityInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if _, err := time.Parse(utils.DateLayout, input.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Date must be formatted as YYYY-MM-DD",
		})
	}
	if len(input.Times) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "At least one time slot is required",
		})
	}

	availability := models.Availability{ProviderID: provider.ID, Date: input.Date}
	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ? AND date = ?", provider.ID, input.Date).
			FirstOrCreate(&availability).Error; err != nil {
			return err
		}

		slots := services.NewSlotStore(tx)
		for _, entry := range input.Times {
			var slot models.TimeSlot
			res := tx.Where("availability_id = ? AND time = ?", availability.ID, entry.Time).
				First(&slot)
			if res.RowsAffected == 0 {
				slot = models.TimeSlot{
					AvailabilityID: availability.ID,
					Time:           entry.Time,
					Available:      entry.Available == nil || *entry.Available,
					IsFastest:      entry.IsFastest,
				}
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
				continue
			}

			if err := tx.Model(&slot).Update("is_fastest", entry.IsFastest).Error; err != nil {
				return err
			}
			if entry.Available == nil {
				continue
			}
			// Existing slots change availability only through the slot store;
			// reopening is refused while a booking still holds the slot.
			if *entry.Available {
				if err := services.ReopenSlot(slots, slot.ID); err != nil {
					return err
				}
			} else if err := slots.MarkUnavailable(slot.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return respondErr(c, err)
	}

	var result models.Availability
	pc.db.Preload("TimeSlots").First(&result, availability.ID)
	return c.JSON(fiber.Map{
		"availability": result,
	})
}

// Dashboard summarizes the caller's provider activity: booking counts per
// status and revenue from completed work.
func (pc *ProviderController) Dashboard(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var provider models.Provider
	if pc.db.Where("user_id = ?", userID).First(&provider).RowsAffected == 0 {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Not a provider",
		})
	}

	var stats struct {
		TotalBookings   int64     `json:"total_bookings"`
		PendingCount    int64     `json:"pending_count"`
		ConfirmedCount  int64     `json:"confirmed_count"`
		InProgressCount int64     `json:"in_progress_count"`
		CompletedCount  int64     `json:"completed_count"`
		CancelledCount  int64     `json:"cancelled_count"`
		TotalRevenue    float64   `json:"total_revenue"`
		LastUpdated     time.Time `json:"last_updated"`
	}

	base := func() *gorm.DB {
		return pc.db.Model(&models.Booking{}).Where("provider_id = ?", provider.ID)
	}
	base().Count(&stats.TotalBookings)
	base().Where("status = ?", models.StatusPending).Count(&stats.PendingCount)
	base().Where("status = ?", models.StatusConfirmed).Count(&stats.ConfirmedCount)
	base().Where("status = ?", models.StatusInProgress).Count(&stats.InProgressCount)
	base().Where("status = ?", models.StatusCompleted).Count(&stats.CompletedCount)
	base().Where("status = ?", models.StatusCancelled).Count(&stats.CancelledCount)

	var revenue struct{ TotalRevenue float64 }
	base().Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0) as total_revenue").
		Scan(&revenue)
	stats.TotalRevenue = revenue.TotalRevenue
	stats.LastUpdated = time.Now()

	return c.JSON(stats)
}
