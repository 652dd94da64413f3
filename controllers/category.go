package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
	"github.com/localserve/local-service-finder/redis"
	"github.com/localserve/local-service-finder/utils"
)

const categoryCacheKey = "categories"

type CategoryController struct {
	db *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

// List returns all categories with their provider counts. The listing is
// public and changes rarely, so it is served from Redis when possible.
func (cc *CategoryController) List(c *fiber.Ctx) error {
	if cached, ok := redis.CacheGet(categoryCacheKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}

	var categories []models.Category
	if err := cc.db.Order("name asc").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch categories",
			Error:   err.Error(),
		})
	}

	counts := map[uint]int64{}
	rows := []struct {
		CategoryID uint
		N          int64
	}{}
	cc.db.Table("provider_categories").
		Select("category_id, count(*) as n").
		Group("category_id").
		Scan(&rows)
	for _, row := range rows {
		counts[row.CategoryID] = row.N
	}

	out := make([]fiber.Map, 0, len(categories))
	for _, category := range categories {
		out = append(out, fiber.Map{
			"id":             category.ID,
			"name":           category.Name,
			"slug":           category.Slug,
			"description":    category.Description,
			"icon":           category.Icon,
			"provider_count": counts[category.ID],
		})
	}

	body := fiber.Map{"categories": out}
	if encoded, err := json.Marshal(body); err == nil {
		redis.CacheSet(categoryCacheKey, encoded, 5*time.Minute)
	}
	return c.JSON(body)
}

type categoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Create adds a category. Admin only; the route enforces the role.
func (cc *CategoryController) Create(c *fiber.Ctx) error {
	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}
	if input.Name == "" || input.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Name and slug are required",
		})
	}

	var existing models.Category
	if cc.db.Where("name = ? OR slug = ?", input.Name, input.Slug).
		First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Category with this name or slug already exists",
		})
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if err := cc.db.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create category",
			Error:   err.Error(),
		})
	}

	redis.CacheDel(categoryCacheKey)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}
