package middleware

import (
	"errors"
	"strings"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/jwt"
	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "user_role"
)

// Auth returns a middleware that enforces JWT authentication and checks the
// account is still active.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := validateToken(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c, "authentication required")
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// RequireOwner gates a route to the owner role. Must run after Auth.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.CapabilitiesFor(CurrentRole(c)).CanManageUsers {
			response.Forbidden(c, "owner access required")
			return
		}
		c.Next()
	}
}

func validateToken(db *gorm.DB, rawToken string) (*jwt.Claims, error) {
	if rawToken == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(rawToken)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.UserModel{}).
		Where("id = ? AND is_active = ?", claims.UserID, true).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New("account disabled or removed")
	}
	return claims, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentRole extracts the authenticated user's role from context.
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get(ContextKeyRole)
	role, _ := v.(string)
	return role
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
