package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/config"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)

		c.Next()
	}
}

// RequireClinic resolves the session clinic for the authenticated user and
// stores it in the context. It must be used after AuthMiddleware. A user
// without a clinic binding cannot reach clinic-scoped resources.
func RequireClinic(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			utils.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		var binding models.UserClinic
		if err := db.First(&binding, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Clinic not found")
			} else {
				utils.InternalServerError(c, "Database error resolving clinic: "+err.Error())
			}
			c.Abort()
			return
		}

		c.Set("clinicID", binding.ClinicID)

		c.Next()
	}
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// GetClinicIDFromContext returns the acting clinic id set by RequireClinic.
func GetClinicIDFromContext(c *gin.Context) (string, bool) {
	clinicID, exists := c.Get("clinicID")
	if !exists {
		return "", false
	}
	idStr, ok := clinicID.(string)
	return idStr, ok
}
