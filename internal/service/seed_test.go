package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/seed"
	"github.com/peptitrace/backend/internal/testhelpers"
)

func TestSeedPeptidesReplacesCatalog(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewSeedService(db)
	ctx := context.Background()

	testhelpers.CreateTestPeptide(t, db, "Leftover")

	result, err := svc.SeedPeptides(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Deleted)
	assert.Equal(t, int64(len(seed.Peptides())), result.Inserted)

	var count int64
	require.NoError(t, db.Model(&models.Peptide{}).Count(&count).Error)
	assert.Equal(t, result.Inserted, count)

	// The leftover row did not survive the reseed.
	var leftover int64
	require.NoError(t, db.Model(&models.Peptide{}).Where("name = ?", "Leftover").Count(&leftover).Error)
	assert.Equal(t, int64(0), leftover)
}

func TestSeedEffectsDerivedFromCatalog(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewSeedService(db)
	ctx := context.Background()

	result, err := svc.SeedEffects(ctx)
	require.NoError(t, err)
	assert.Greater(t, result.Inserted, int64(0))

	var positives, negatives int64
	require.NoError(t, db.Model(&models.Effect{}).Where("type = ?", models.EffectPositive).Count(&positives).Error)
	require.NoError(t, db.Model(&models.Effect{}).Where("type = ?", models.EffectNegative).Count(&negatives).Error)
	assert.Greater(t, positives, int64(0))
	assert.Greater(t, negatives, int64(0))
	assert.Equal(t, result.Inserted, positives+negatives)

	var sideEffect models.Effect
	require.NoError(t, db.Where("type = ?", models.EffectNegative).First(&sideEffect).Error)
	assert.Equal(t, "Side Effect", sideEffect.Category)
	assert.False(t, sideEffect.IsCommon)
}

func TestClearPeptides(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewSeedService(db)
	ctx := context.Background()

	_, err := svc.SeedPeptides(ctx)
	require.NoError(t, err)

	result, err := svc.ClearPeptides(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(seed.Peptides())), result.Deleted)

	var count int64
	require.NoError(t, db.Model(&models.Peptide{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestEnsureModeratorIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewSeedService(db)
	ctx := context.Background()

	require.NoError(t, svc.EnsureModerator(ctx, "mod@example.com", "a-strong-password"))
	require.NoError(t, svc.EnsureModerator(ctx, "mod@example.com", "a-strong-password"))

	var mods []models.User
	require.NoError(t, db.Where("email = ?", "mod@example.com").Find(&mods).Error)
	require.Len(t, mods, 1)
	assert.Equal(t, models.RoleModerator, mods[0].Role)
	assert.Equal(t, models.StatusApproved, mods[0].Status)
	assert.NotEqual(t, "a-strong-password", mods[0].PasswordHash)
}

// Leaving the bootstrap variables unset skips moderator creation entirely.
func TestEnsureModeratorSkipsWhenUnconfigured(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewSeedService(db)
	ctx := context.Background()

	require.NoError(t, svc.EnsureModerator(ctx, "", ""))
	require.NoError(t, svc.EnsureModerator(ctx, "mod@example.com", ""))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
