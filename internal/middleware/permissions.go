package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
)

// Resource is a kind of record the permission table knows about.
type Resource string

// Operation is an action the permission table knows about.
type Operation string

const (
	ResourceExperience Resource = "experience"
	ResourcePeptide    Resource = "peptide"
	ResourceUser       Resource = "user"
	ResourceAnalytics  Resource = "analytics"
	ResourceVote       Resource = "vote"
)

const (
	OpCreate   Operation = "create"
	OpRead     Operation = "read"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpModerate Operation = "moderate"
	OpExport   Operation = "export"
)

// Reason classifies why a permission decision came out the way it did.
// Undefined combinations and role mismatches both map to 403 on the wire,
// but tests and logs need to tell them apart.
type Reason int

const (
	ReasonAllowed Reason = iota
	ReasonUndefined
	ReasonRoleDenied
	ReasonNotOwner
)

// Decision is the outcome of a permission lookup.
type Decision struct {
	Allowed bool
	Reason  Reason
	Message string
}

// permissionTable maps (resource, operation) to the roles allowed. Absence
// of an entry is itself a rejection; nothing defaults to permit.
var permissionTable = map[Resource]map[Operation][]string{
	ResourceExperience: {
		OpCreate:   {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpRead:     {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpUpdate:   {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpDelete:   {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpModerate: {models.RoleModerator, models.RoleAdmin},
	},
	ResourcePeptide: {
		OpCreate:   {models.RoleModerator, models.RoleAdmin},
		OpRead:     {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpUpdate:   {models.RoleModerator, models.RoleAdmin},
		OpDelete:   {models.RoleAdmin},
		OpModerate: {models.RoleModerator, models.RoleAdmin},
	},
	ResourceUser: {
		OpCreate:   {models.RoleModerator, models.RoleAdmin},
		OpRead:     {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpUpdate:   {models.RoleUser, models.RoleModerator, models.RoleAdmin},
		OpDelete:   {models.RoleAdmin},
		OpModerate: {models.RoleModerator, models.RoleAdmin},
	},
	ResourceAnalytics: {
		OpRead:   {models.RoleModerator, models.RoleAdmin},
		OpExport: {models.RoleModerator, models.RoleAdmin},
	},
}

// Decide is the pure permission lookup: no ownership, no store access.
func Decide(resource Resource, op Operation, role string) Decision {
	ops, ok := permissionTable[resource]
	if !ok {
		return undefinedDecision(resource, op)
	}
	roles, ok := ops[op]
	if !ok {
		return undefinedDecision(resource, op)
	}
	for _, allowed := range roles {
		if role == allowed {
			return Decision{Allowed: true, Reason: ReasonAllowed}
		}
	}
	return Decision{
		Allowed: false,
		Reason:  ReasonRoleDenied,
		Message: fmt.Sprintf("Insufficient permissions for %s on %s", op, resource),
	}
}

func undefinedDecision(resource Resource, op Operation) Decision {
	return Decision{
		Allowed: false,
		Reason:  ReasonUndefined,
		Message: fmt.Sprintf("Operation %s on %s not defined", op, resource),
	}
}

// RequirePermission gates a route on the permission table, then applies the
// ownership restriction for update/delete on experience and user records.
//
// The ownership check applies to every role: the table admits moderators and
// admins to these operations but does not exempt them from owning the target.
func RequirePermission(db *gorm.DB, op Operation, resource Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}

		decision := Decide(resource, op, user.Role)
		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   decision.Message,
			})
			return
		}

		if ownershipRestricted(resource, op) {
			if d := checkOwnership(c, db, resource, user); !d.Allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false,
					"error":   d.Message,
				})
				return
			}
		}

		c.Next()
	}
}

func ownershipRestricted(resource Resource, op Operation) bool {
	if op != OpUpdate && op != OpDelete {
		return false
	}
	return resource == ResourceExperience || resource == ResourceUser
}

func checkOwnership(c *gin.Context, db *gorm.DB, resource Resource, user *models.User) Decision {
	resourceID := c.Param("id")
	if resourceID == "" {
		resourceID = c.Param("userId")
	}
	if resourceID == "" || resourceID == user.ID.String() {
		return Decision{Allowed: true, Reason: ReasonAllowed}
	}

	notOwner := Decision{
		Allowed: false,
		Reason:  ReasonNotOwner,
		Message: "You can only modify your own data",
	}

	switch resource {
	case ResourceExperience:
		var experience models.Experience
		if err := db.WithContext(c.Request.Context()).First(&experience, "id = ?", resourceID).Error; err != nil {
			return notOwner
		}
		if experience.UserID == nil || *experience.UserID != user.ID {
			return notOwner
		}
		return Decision{Allowed: true, Reason: ReasonAllowed}
	case ResourceUser:
		return notOwner
	}
	return Decision{Allowed: true, Reason: ReasonAllowed}
}
