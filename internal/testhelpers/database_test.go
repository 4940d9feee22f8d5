package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peptitrace/backend/internal/models"
)

func TestSetupTestDBMigratesSchema(t *testing.T) {
	db := SetupTestDB(t)

	for _, table := range []string{"users", "peptides", "experiences", "votes", "effects"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestFixturesRoundTrip(t *testing.T) {
	db := SetupTestDB(t)

	user := CreateTestUser(t, db, models.RoleUser, models.StatusApproved)
	peptide := CreateTestPeptide(t, db, "BPC-157")
	experience := CreateTestExperience(t, db, user, peptide)

	var stored models.Experience
	require.NoError(t, db.First(&stored, "id = ?", experience.ID).Error)
	assert.Equal(t, user.ID, *stored.UserID)
	assert.Equal(t, peptide.Name, stored.PeptideName)
	assert.Equal(t, models.ExperienceActive, stored.State)
}

// Exercises the container path end to end; skipped when docker is absent.
func TestSetupPostgresTestDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	pg := SetupPostgresTestDB(t)
	user := CreateTestUser(t, pg, models.RoleModerator, models.StatusApproved)

	var count int64
	require.NoError(t, pg.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
