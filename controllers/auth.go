package controllers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localserve/local-service-finder/models"
	"github.com/localserve/local-service-finder/redis"
	"github.com/localserve/local-service-finder/utils"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Register creates a user account and returns it with a fresh token pair.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Email, password, and name are required",
		})
	}
	input.Email = strings.ToLower(input.Email)
	if !utils.IsValidEmail(input.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid email format",
		})
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	var existing models.User
	if ac.db.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}

	role := input.Role
	if role != models.RoleProvider && role != models.RoleAdmin {
		role = models.RoleCustomer
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Phone:    input.Phone,
		Role:     role,
		Avatar:   fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", url.QueryEscape(input.Name)),
	}
	if err := ac.db.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	token, refresh, err := issueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	user.Sanitize()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "User registered successfully",
		"user":         user,
		"token":        token,
		"refreshToken": refresh,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates by email and password.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	var user models.User
	if ac.db.Where("email = ?", strings.ToLower(input.Email)).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}
	if !utils.CheckPassword(input.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}

	token, refresh, err := issueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refresh,
		"user": fiber.Map{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
			"avatar": user.Avatar,
		},
	})
}

// Me returns the authenticated user's profile, with the provider profile
// attached when one exists.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	var user models.User
	if err := ac.db.Preload("Provider").Preload("Provider.Categories").
		First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	user.Sanitize()
	return c.JSON(user)
}

// Logout revokes the presented access token for its remaining lifetime.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	payload, err := utils.VerifyToken(utils.ExtractBearer(c.Get("Authorization")))
	if err == nil && payload.JTI != "" {
		if err := redis.BlacklistToken(payload.JTI, time.Until(payload.Exp)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to revoke token",
			})
		}
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

type refreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken mints a new access token from a valid refresh token.
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	input := new(refreshInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
		})
	}

	payload, err := utils.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid refresh token",
		})
	}
	if payload.JTI != "" && redis.IsBlacklisted(payload.JTI) {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Token has been revoked",
		})
	}

	var user models.User
	if err := ac.db.First(&user, payload.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid refresh token",
		})
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}
	return c.JSON(fiber.Map{
		"token": token,
	})
}

// UpdateAvatar uploads a new profile picture and stores its URL.
func (ac *AuthController) UpdateAvatar(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "User ID not found in context",
		})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Avatar file is required",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to read avatar file",
		})
	}
	defer file.Close()

	avatarURL, err := utils.UploadAvatar(file, fmt.Sprintf("user_%d", userID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload avatar",
			Error:   err.Error(),
		})
	}

	if err := ac.db.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar", avatarURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update avatar",
		})
	}
	return c.JSON(fiber.Map{
		"avatar": avatarURL,
	})
}

func issueTokens(user *models.User) (token, refresh string, err error) {
	token, err = utils.GenerateToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, err = utils.GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return token, refresh, nil
}
