package api

import (
	"fmt"
	"net/http"
	"strings"
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

func experienceTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	authenticate := middleware.Authenticate(db, testhelpers.TestAccessSecret)

	engine := gin.New()
	handler := NewExperienceHandler(db, service.NewExperienceService(db), service.NewVoteService(db), authenticate)
	handler.RegisterRoutes(engine.Group("/api"))
	return db, engine
}

func submissionPayload(peptideID string) gin.H {
	return gin.H{
		"peptideId":             peptideID,
		"dosage":                "250 mcg",
		"frequency":             "daily",
		"duration":              30,
		"routeOfAdministration": "subcutaneous",
		"outcomes":              gin.H{"energy": 7, "recovery": 8},
		"timeline":              "1-week",
	}
}

func TestSubmitExperienceEndpoint(t *testing.T) {
	db, engine := experienceTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	token := testhelpers.MintAccessToken(t, user)

	rec, body := doJSON(t, engine, http.MethodPost, "/api/experiences", submissionPayload(peptide.ID.String()), token)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["tracking_id"].(string), "TRK-"))
	assert.Equal(t, "BPC-157", data["peptide_name"])
}

func TestSubmitExperienceAnonymous(t *testing.T) {
	db, engine := experienceTestRouter(t)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")

	rec, body := doJSON(t, engine, http.MethodPost, "/api/experiences", submissionPayload(peptide.ID.String()), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication required", body["error"])
}

// Filling the hidden website field marks the submission as automated.
func TestSubmitExperienceHoneypot(t *testing.T) {
	db, engine := experienceTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	token := testhelpers.MintAccessToken(t, user)

	payload := submissionPayload(peptide.ID.String())
	payload["website"] = "https://spam.example.com"
	rec, body := doJSON(t, engine, http.MethodPost, "/api/experiences", payload, token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid submission", body["error"])

	var count int64
	require.NoError(t, db.Model(&models.Experience{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSubmitExperienceRateLimited(t *testing.T) {
	db, engine := experienceTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	token := testhelpers.MintAccessToken(t, user)

	for i := 0; i < 5; i++ {
		rec, _ := doJSON(t, engine, http.MethodPost, "/api/experiences", submissionPayload(peptide.ID.String()), token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, body := doJSON(t, engine, http.MethodPost, "/api/experiences", submissionPayload(peptide.ID.String()), token)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded. Maximum 5 submissions per 24 hours.", body["error"])
}

func TestHomePublicEndpoint(t *testing.T) {
	db, engine := experienceTestRouter(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	for i := 0; i < 4; i++ {
		testhelpers.CreateTestExperience(t, db, user, peptide)
	}

	rec, body := doJSON(t, engine, http.MethodGet, "/api/experiences/home/public", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	experiences := data["experiences"].([]interface{})
	assert.Len(t, experiences, 3)

	// Reduced view: no owner, no tracking id.
	first := experiences[0].(map[string]interface{})
	assert.Contains(t, first, "peptideName")
	assert.NotContains(t, first, "tracking_id")
	assert.NotContains(t, first, "user_id")
}

func TestGetExperienceByTrackingIDEndpoint(t *testing.T) {
	db, engine := experienceTestRouter(t)
	owner := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	experience := testhelpers.CreateTestExperience(t, db, owner, peptide)
	token := testhelpers.MintAccessToken(t, owner)

	// Tracking lookup needs a token: read permission is table-gated.
	rec, _ := doJSON(t, engine, http.MethodGet, "/api/experiences/tracking/"+experience.TrackingID, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := doJSON(t, engine, http.MethodGet, "/api/experiences/tracking/"+experience.TrackingID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, experience.ID.String(), data["id"])

	rec, body = doJSON(t, engine, http.MethodGet, "/api/experiences/tracking/TRK-000000000000", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Experience not found", body["error"])
}

func TestUpdateExperienceEndpointOwnership(t *testing.T) {
	db, engine := experienceTestRouter(t)
	owner := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	admin := testhelpers.CreateTestUser(t, db, models.RoleAdmin, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	experience := testhelpers.CreateTestExperience(t, db, owner, peptide)

	path := "/api/experiences/" + experience.ID.String()
	payload := gin.H{"story": "updated story"}

	// Ownership holds even for admins.
	rec, body := doJSON(t, engine, http.MethodPut, path, payload, testhelpers.MintAccessToken(t, admin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only modify your own data", body["error"])

	rec, body = doJSON(t, engine, http.MethodPut, path, payload, testhelpers.MintAccessToken(t, owner))
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "updated story", data["story"])
}

func TestDeleteExperienceEndpoint(t *testing.T) {
	db, engine := experienceTestRouter(t)
	owner := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	experience := testhelpers.CreateTestExperience(t, db, owner, peptide)

	path := "/api/experiences/" + experience.ID.String()
	token := testhelpers.MintAccessToken(t, owner)
	rec, body := doJSON(t, engine, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Experience deleted successfully", body["message"])

	rec, _ = doJSON(t, engine, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVoteEndpoints(t *testing.T) {
	db, engine := experienceTestRouter(t)
	owner := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	voter := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	experience := testhelpers.CreateTestExperience(t, db, owner, peptide)
	token := testhelpers.MintAccessToken(t, voter)

	votesPath := fmt.Sprintf("/api/experiences/%s/votes", experience.ID)

	// Voting needs a token.
	rec, body := doJSON(t, engine, http.MethodPost, votesPath, gin.H{"type": "helpful"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = doJSON(t, engine, http.MethodPost, votesPath, gin.H{"type": "helpful"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, engine, http.MethodPost, votesPath, gin.H{"type": "amazing"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid vote type", body["error"])

	// The summary is public.
	rec, body = doJSON(t, engine, http.MethodGet, votesPath, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	rec, body = doJSON(t, engine, http.MethodGet, votesPath+"/user", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, engine, http.MethodDelete, votesPath, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Vote removed", body["message"])

	rec, body = doJSON(t, engine, http.MethodDelete, votesPath, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
