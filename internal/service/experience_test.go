package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/testhelpers"
	"github.com/peptitrace/backend/internal/types"
)

func experienceFixtures(t *testing.T) (*gorm.DB, *ExperienceService, *models.User, *models.Peptide) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	return db, NewExperienceService(db), user, peptide
}

func validCreateRequest(peptideID uuid.UUID) types.CreateExperienceRequest {
	return types.CreateExperienceRequest{
		PeptideID: peptideID.String(),
		Dosage:    "250 mcg",
		Frequency: "daily",
		Duration:  30,
		Route:     "subcutaneous",
		Outcomes:  map[string]float64{"energy": 7, "recovery": 8},
		Timeline:  "1-week",
	}
}

func TestCreateExperienceAssignsTrackingID(t *testing.T) {
	_, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()

	experience, err := svc.Create(ctx, &user.ID, validCreateRequest(peptide.ID))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(experience.TrackingID, "TRK-"))
	assert.Len(t, experience.TrackingID, 16)
	assert.Equal(t, peptide.Name, experience.PeptideName)
	assert.Equal(t, models.ExperienceActive, experience.State)
}

func TestTrackingIDsAreUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id := NewTrackingID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate tracking id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestCreateExperienceValidation(t *testing.T) {
	_, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()

	req := validCreateRequest(peptide.ID)
	req.Outcomes = nil
	_, err := svc.Create(ctx, &user.ID, req)
	assert.ErrorIs(t, err, ErrEmptyOutcomes)

	req = validCreateRequest(peptide.ID)
	req.Frequency = "hourly"
	_, err = svc.Create(ctx, &user.ID, req)
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	req = validCreateRequest(peptide.ID)
	req.Route = "topical"
	_, err = svc.Create(ctx, &user.ID, req)
	assert.ErrorIs(t, err, ErrInvalidRoute)

	req = validCreateRequest(peptide.ID)
	req.Timeline = "someday"
	_, err = svc.Create(ctx, &user.ID, req)
	assert.ErrorIs(t, err, ErrInvalidTimeline)

	req = validCreateRequest(uuid.New())
	_, err = svc.Create(ctx, &user.ID, req)
	assert.ErrorIs(t, err, ErrPeptideNotFound)
}

func TestGetByTrackingIDIsExact(t *testing.T) {
	_, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()

	experience, err := svc.Create(ctx, &user.ID, validCreateRequest(peptide.ID))
	require.NoError(t, err)

	found, err := svc.GetByTrackingID(ctx, experience.TrackingID)
	require.NoError(t, err)
	assert.Equal(t, experience.ID, found.ID)

	_, err = svc.GetByTrackingID(ctx, strings.ToLower(experience.TrackingID))
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	_, err = svc.GetByTrackingID(ctx, "TRK-000000000000")
	assert.ErrorIs(t, err, ErrExperienceNotFound)
}

func TestUpdateExperienceOwnerOnly(t *testing.T) {
	db, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()
	other := testhelpers.CreateTestUser(t, db, models.RoleAdmin, models.StatusApproved)

	experience, err := svc.Create(ctx, &user.ID, validCreateRequest(peptide.ID))
	require.NoError(t, err)

	story := "noticeable recovery improvement"
	_, err = svc.Update(ctx, experience.ID.String(), other.ID, types.UpdateExperienceRequest{Story: &story})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(ctx, experience.ID.String(), user.ID, types.UpdateExperienceRequest{Story: &story})
	require.NoError(t, err)
	assert.Equal(t, story, updated.Story)
	assert.Equal(t, experience.TrackingID, updated.TrackingID)
}

func TestDeleteRetractsExperience(t *testing.T) {
	db, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()

	experience, err := svc.Create(ctx, &user.ID, validCreateRequest(peptide.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, experience.ID.String(), user.ID))

	// Gone from every read path.
	_, err = svc.GetByID(ctx, experience.ID.String())
	assert.ErrorIs(t, err, ErrExperienceNotFound)
	_, err = svc.GetByTrackingID(ctx, experience.TrackingID)
	assert.ErrorIs(t, err, ErrExperienceNotFound)

	list, err := svc.List(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.Total)

	// But the row is still there, retracted.
	var stored models.Experience
	require.NoError(t, db.First(&stored, "id = ?", experience.ID).Error)
	assert.Equal(t, models.ExperienceRetracted, stored.State)
}

func TestDeleteExperienceNotOwner(t *testing.T) {
	db, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()
	other := testhelpers.CreateTestUser(t, db, models.RoleModerator, models.StatusApproved)

	experience, err := svc.Create(ctx, &user.ID, validCreateRequest(peptide.ID))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, experience.ID.String(), other.ID), ErrNotOwner)
}

func TestListPagination(t *testing.T) {
	_, svc, user, peptide := experienceFixtures(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, &user.ID, validCreateRequest(peptide.ID))
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListFilters{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	assert.Len(t, page.Experiences, 5)

	rest, err := svc.List(ctx, ListFilters{Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.Len(t, rest.Experiences, 2)
}
