package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/types"
)

const identityKey = "currentUser"

// CurrentUser returns the resolved acting user, or nil for anonymous callers.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// Authenticate resolves the caller's identity from the Authorization header.
//
// A missing, malformed or unverifiable token is not an error: the caller
// proceeds as anonymous and downstream checks decide whether that is enough.
// A verifiable token naming a user that is missing or not approved is
// rejected outright, since a resolvable-but-inactive account is informative
// to the caller.
func Authenticate(db *gorm.DB, accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims := &types.TokenClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(accessSecret), nil
		})
		if err != nil || !parsed.Valid {
			c.Next()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "Account not active",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to resolve account",
			})
			return
		}
		if !user.IsApproved() {
			msg := "Account not active"
			if user.Status == models.StatusPending {
				msg = "Account pending approval"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   msg,
			})
			return
		}

		c.Set(identityKey, &user)
		c.Next()
	}
}

// RequireAuth rejects anonymous callers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireModerator admits only the moderator role. Admins are deliberately
// not admitted here; routes shared by both roles go through the permission
// table's moderate entry instead.
func RequireModerator() gin.HandlerFunc {
	return requireRole(models.RoleModerator, "Moderator access required")
}

// RequireAdmin admits only the admin role.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(models.RoleAdmin, "Admin access required")
}

func requireRole(role, denied string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   denied,
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
