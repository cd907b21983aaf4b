package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

// defaultJWTSecret is only for local development; set JWT_SECRET in production
const defaultJWTSecret = "scheme_genie_jwt_secret_2024"

// AuthClaims are the claims carried by a Scheme Genie bearer token
type AuthClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTSecret returns the signing key from the environment
func JWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte(defaultJWTSecret)
}

// GenerateToken issues a signed bearer token for the user, valid for 30 days
func GenerateToken(user *models.User) (string, error) {
	claims := AuthClaims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// Protect requires a valid bearer token and stores the resolved identity
// in the request locals. Demo sentinel tokens are accepted for local
// development, mirroring the original system's behavior.
func Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, no token",
			})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		// Demo tokens for local development
		if strings.HasPrefix(tokenString, "demo_token_") {
			c.Locals("userID", "demo-user")
			c.Locals("email", "demo@example.com")
			c.Locals("role", models.RoleUser)
			return c.Next()
		}

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authorized, token failed",
			})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireAdmin rejects requests whose token does not resolve to the admin role.
// Must run after Protect.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Not authorized as an admin",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's ID from the request locals
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

// Role returns the authenticated user's role from the request locals
func Role(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
