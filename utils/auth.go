package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/localserve/local-service-finder/models"
)

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPayload is the identity carried by a verified token. Refresh reports
// whether the token was minted by GenerateRefreshToken.
type TokenPayload struct {
	UserID  uint
	Email   string
	Role    string
	JTI     string
	Refresh bool
	Exp     time.Time
}

func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(secret)
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues an access token carrying user id, email and role.
func GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"jti":   GenerateUUID(),
		"exp":   time.Now().Add(AccessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// GenerateRefreshToken issues a longer-lived token used only to mint new
// access tokens.
func GenerateRefreshToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":      user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"jti":     GenerateUUID(),
		"refresh": true,
		"exp":     time.Now().Add(RefreshTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// VerifyToken parses and validates a token and returns its payload.
func VerifyToken(tokenString string) (*TokenPayload, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("no user ID in token")
	}

	payload := &TokenPayload{UserID: uint(id)}
	if email, ok := claims["email"].(string); ok {
		payload.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		payload.Role = role
	}
	if jti, ok := claims["jti"].(string); ok {
		payload.JTI = jti
	}
	if refresh, ok := claims["refresh"].(bool); ok {
		payload.Refresh = refresh
	}
	if exp, ok := claims["exp"].(float64); ok {
		payload.Exp = time.Unix(int64(exp), 0)
	}
	return payload, nil
}

// VerifyRefreshToken validates a token and additionally requires the refresh
// claim, so an access token cannot be replayed at the refresh endpoint.
func VerifyRefreshToken(tokenString string) (*TokenPayload, error) {
	payload, err := VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !payload.Refresh {
		return nil, fmt.Errorf("not a refresh token")
	}
	return payload, nil
}

// ExtractBearer returns the token from an Authorization header, or "" when
// the header is missing or not a bearer scheme.
func ExtractBearer(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidatePassword enforces the registration password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}
