package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
)

// Submission ceilings per role over a trailing 24-hour window.
var submissionLimits = map[string]int64{
	models.RoleUser:      5,
	models.RoleModerator: 20,
	models.RoleAdmin:     50,
}

// RateLimitExperienceSubmission enforces the per-identity submission ceiling.
// The window is recomputed from stored records on every call rather than
// tracked in a counter, so restarts cannot reset it.
func RateLimitExperienceSubmission(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}

		limit, ok := submissionLimits[user.Role]
		if !ok {
			limit = submissionLimits[models.RoleUser]
		}

		windowStart := time.Now().Add(-24 * time.Hour)
		var recent int64
		err := db.WithContext(c.Request.Context()).
			Model(&models.Experience{}).
			Where("user_id = ? AND created_at >= ?", user.ID, windowStart).
			Count(&recent).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to check submission rate",
			})
			return
		}

		if recent >= limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Rate limit exceeded. Maximum %d submissions per 24 hours.", limit),
			})
			return
		}

		c.Next()
	}
}
