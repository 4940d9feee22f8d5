package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/testhelpers"
	"github.com/peptitrace/backend/internal/types"
)

func validPeptideRequest(name string) types.PeptideRequest {
	return types.PeptideRequest{
		Name:            name,
		Sequence:        "Gly-Glu-Pro-Pro",
		Category:        "Healing & Recovery",
		Description:     "test peptide",
		CommonDosage:    "250 mcg",
		CommonFrequency: "daily",
	}
}

func TestCreatePeptideValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewPeptideService(db)
	ctx := context.Background()

	req := validPeptideRequest("GHK-Cu")
	req.Sequence = "not a sequence!!"
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidSequence)

	req = validPeptideRequest("GHK-Cu")
	req.Category = "Miracle Cures"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	peptide, err := svc.Create(ctx, validPeptideRequest("GHK-Cu"))
	require.NoError(t, err)
	assert.Equal(t, "GHK-Cu", peptide.Name)

	_, err = svc.Create(ctx, validPeptideRequest("GHK-Cu"))
	assert.ErrorIs(t, err, ErrPeptideExists)
}

func TestGetPeptideWithStats(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewPeptideService(db)
	ctx := context.Background()

	peptide := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	testhelpers.CreateTestExperience(t, db, user, peptide)
	testhelpers.CreateTestExperience(t, db, user, peptide)

	entry, err := svc.Get(ctx, peptide.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, entry.TotalExperiences)
	// Fixture outcomes are energy 7 and recovery 8, so the mean is 7.5.
	assert.InDelta(t, 7.5, entry.AverageRating, 0.001)

	_, err = svc.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrPeptideNotFound)
}

func TestListRanksByPopularity(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewPeptideService(db)
	ctx := context.Background()

	quiet := testhelpers.CreateTestPeptide(t, db, "Epitalon")
	busy := testhelpers.CreateTestPeptide(t, db, "BPC-157")
	user := testhelpers.CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	for i := 0; i < 3; i++ {
		testhelpers.CreateTestExperience(t, db, user, busy)
	}

	peptides, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, peptides, 2)
	assert.Equal(t, busy.Name, peptides[0].Name)
	assert.Equal(t, quiet.Name, peptides[1].Name)
	assert.Greater(t, peptides[0].Popularity, peptides[1].Popularity)
	assert.Equal(t, 3, peptides[0].TotalExperiences)
}

func TestSearchPeptides(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewPeptideService(db)
	ctx := context.Background()

	testhelpers.CreateTestPeptide(t, db, "BPC-157")
	testhelpers.CreateTestPeptide(t, db, "TB-500")

	results, err := svc.Search(ctx, "bpc")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "BPC-157", results[0].Name)

	// Category matches too.
	results, err = svc.Search(ctx, "healing")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDeletePeptide(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewPeptideService(db)
	ctx := context.Background()

	peptide := testhelpers.CreateTestPeptide(t, db, "DSIP")
	require.NoError(t, svc.Delete(ctx, peptide.ID.String()))
	assert.ErrorIs(t, svc.Delete(ctx, peptide.ID.String()), ErrPeptideNotFound)
}
