package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/middleware"
	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/service"
	"github.com/peptitrace/backend/internal/testhelpers"
)

func userTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	authenticate := middleware.Authenticate(db, testhelpers.TestAccessSecret)

	engine := gin.New()
	NewUserHandler(db, service.NewUserService(db), authenticate).RegisterRoutes(engine.Group("/api"))
	return db, engine
}

// Moderation routes are gated on the moderate table entry: regular users
// are rejected, moderators and admins pass.
func TestPendingUsersEndpointGating(t *testing.T) {
	db, engine := userTestRouter(t)
	testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusPending)
	regular := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	moderator := testhelpers.CreateTestUser(t, db, models.RoleModerator, models.StatusApproved)
	admin := testhelpers.CreateTestUser(t, db, models.RoleAdmin, models.StatusApproved)

	rec, body := doJSON(t, engine, http.MethodGet, "/api/users/pending", nil, testhelpers.MintAccessToken(t, regular))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Insufficient permissions for moderate on user", body["error"])

	rec, body = doJSON(t, engine, http.MethodGet, "/api/users/pending", nil, testhelpers.MintAccessToken(t, moderator))
	require.Equal(t, http.StatusOK, rec.Code)
	users := body["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "pending", users[0].(map[string]interface{})["status"])

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/users/pending", nil, testhelpers.MintAccessToken(t, admin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, engine, http.MethodGet, "/api/users/pending", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApproveUserEndpoint(t *testing.T) {
	db, engine := userTestRouter(t)
	pending := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusPending)
	regular := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	moderator := testhelpers.CreateTestUser(t, db, models.RoleModerator, models.StatusApproved)

	path := "/api/users/" + pending.ID.String() + "/approve"

	rec, _ := doJSON(t, engine, http.MethodPost, path, nil, testhelpers.MintAccessToken(t, regular))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := doJSON(t, engine, http.MethodPost, path, nil, testhelpers.MintAccessToken(t, moderator))
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "approved", user["status"])
	assert.NotEmpty(t, user["approval_date"])

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", pending.ID).Error)
	assert.Equal(t, models.StatusApproved, stored.Status)
}

func TestRejectUserEndpoint(t *testing.T) {
	db, engine := userTestRouter(t)
	pending := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusPending)
	moderator := testhelpers.CreateTestUser(t, db, models.RoleModerator, models.StatusApproved)

	path := "/api/users/" + pending.ID.String() + "/reject"
	rec, body := doJSON(t, engine, http.MethodPost, path, gin.H{"notes": "duplicate account"}, testhelpers.MintAccessToken(t, moderator))
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "rejected", user["status"])

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", pending.ID).Error)
	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.Equal(t, "duplicate account", stored.ModeratorNotes)

	unknown := "/api/users/00000000-0000-0000-0000-000000000000/reject"
	rec, body = doJSON(t, engine, http.MethodPost, unknown, gin.H{"notes": "n/a"}, testhelpers.MintAccessToken(t, moderator))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", body["error"])
}

func TestMeEndpoint(t *testing.T) {
	db, engine := userTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)

	rec, body := doJSON(t, engine, http.MethodGet, "/api/users/me", nil, testhelpers.MintAccessToken(t, user))
	require.Equal(t, http.StatusOK, rec.Code)
	me := body["user"].(map[string]interface{})
	assert.Equal(t, user.Email, me["email"])
}
