package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/peptitrace/backend/internal/models"
)

func openPermissionsDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Peptide{}, &models.Experience{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func permissionRouter(db *gorm.DB, user *models.User, op Operation, resource Resource, path string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	inject := func(c *gin.Context) {
		if user != nil {
			c.Set(identityKey, user)
		}
		c.Next()
	}
	r.Handle(http.MethodGet, path, inject, RequirePermission(db, op, resource), handler)
	return r
}

func TestDecideUndefinedCombination(t *testing.T) {
	d := Decide(ResourceVote, OpCreate, models.RoleAdmin)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUndefined, d.Reason)
	assert.Equal(t, "Operation create on vote not defined", d.Message)

	d = Decide(ResourceExperience, OpExport, models.RoleAdmin)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUndefined, d.Reason)
}

func TestDecideRoleDenied(t *testing.T) {
	d := Decide(ResourcePeptide, OpCreate, models.RoleUser)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleDenied, d.Reason)
	assert.Equal(t, "Insufficient permissions for create on peptide", d.Message)

	d = Decide(ResourcePeptide, OpDelete, models.RoleModerator)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRoleDenied, d.Reason)
}

func TestDecideAllowed(t *testing.T) {
	for _, role := range []string{models.RoleUser, models.RoleModerator, models.RoleAdmin} {
		d := Decide(ResourceExperience, OpCreate, role)
		assert.True(t, d.Allowed, "role %s should create experiences", role)
	}
	assert.True(t, Decide(ResourceAnalytics, OpRead, models.RoleModerator).Allowed)
	assert.False(t, Decide(ResourceAnalytics, OpRead, models.RoleUser).Allowed)
}

func TestRequirePermissionAnonymous(t *testing.T) {
	db := openPermissionsDB(t)
	r := permissionRouter(db, nil, OpRead, ResourceExperience, "/experiences")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/experiences", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestRequirePermissionUndefined(t *testing.T) {
	db := openPermissionsDB(t)
	admin := &models.User{Role: models.RoleAdmin, Status: models.StatusApproved}
	r := permissionRouter(db, admin, OpCreate, ResourceVote, "/votes")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/votes", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Operation create on vote not defined")
}

// Ownership binds every role, including admin.
func TestRequirePermissionOwnershipAppliesToAdmins(t *testing.T) {
	db := openPermissionsDB(t)

	owner := &models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "$2a$10$x", Role: models.RoleUser, Status: models.StatusApproved}
	admin := &models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "$2a$10$x", Role: models.RoleAdmin, Status: models.StatusApproved}
	for _, u := range []*models.User{owner, admin} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	experience := &models.Experience{
		UserID:      &owner.ID,
		PeptideID:   uuid.New(),
		PeptideName: "BPC-157",
		TrackingID:  "TRK-abc123def456",
		Dosage:      "250 mcg",
		Frequency:   "daily",
		Duration:    30,
		Route:       "subcutaneous",
		Outcomes:    models.JSONBFloatMap{"energy": 7},
		Timeline:    "1-week",
	}
	if err := db.Create(experience).Error; err != nil {
		t.Fatalf("failed to create experience: %v", err)
	}

	r := permissionRouter(db, admin, OpUpdate, ResourceExperience, "/experiences/:id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/experiences/"+experience.ID.String(), nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You can only modify your own data")
}

func TestRequirePermissionOwnerPasses(t *testing.T) {
	db := openPermissionsDB(t)

	owner := &models.User{Username: "owner2", Email: "owner2@example.com", PasswordHash: "$2a$10$x", Role: models.RoleUser, Status: models.StatusApproved}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	experience := &models.Experience{
		UserID:      &owner.ID,
		PeptideID:   uuid.New(),
		PeptideName: "TB-500",
		TrackingID:  "TRK-def456abc789",
		Dosage:      "2 mg",
		Frequency:   "weekly",
		Duration:    30,
		Route:       "subcutaneous",
		Outcomes:    models.JSONBFloatMap{"recovery": 8},
		Timeline:    "2-weeks",
	}
	if err := db.Create(experience).Error; err != nil {
		t.Fatalf("failed to create experience: %v", err)
	}

	r := permissionRouter(db, owner, OpUpdate, ResourceExperience, "/experiences/:id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/experiences/"+experience.ID.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionUserUpdateOtherUser(t *testing.T) {
	db := openPermissionsDB(t)
	mod := &models.User{Username: "mod", Email: "mod@example.com", PasswordHash: "$2a$10$x", Role: models.RoleModerator, Status: models.StatusApproved}
	other := &models.User{Username: "other", Email: "other@example.com", PasswordHash: "$2a$10$x", Role: models.RoleUser, Status: models.StatusApproved}
	for _, u := range []*models.User{mod, other} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	r := permissionRouter(db, mod, OpUpdate, ResourceUser, "/users/:id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+other.ID.String(), nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You can only modify your own data")

	// Same id passes.
	r = permissionRouter(db, mod, OpUpdate, ResourceUser, "/users/:id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+mod.ID.String(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
