package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/types"
)

// TestPassword is the plaintext behind every fixture account.
const TestPassword = "correct horse battery staple"

// TestAccessSecret signs fixture tokens; middleware under test must be
// built with the same value.
const TestAccessSecret = "test-access-secret"

// CreateTestUser inserts a user with the given role and status. Email and
// username are unique per call.
func CreateTestUser(t *testing.T, db *gorm.DB, role, status string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	suffix := uuid.NewString()[:8]
	user := &models.User{
		Username:     fmt.Sprintf("user_%s", suffix),
		Email:        fmt.Sprintf("user_%s@example.com", suffix),
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// MintAccessToken signs a short-lived access token for the user with
// TestAccessSecret.
func MintAccessToken(t *testing.T, user *models.User) string {
	t.Helper()

	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestAccessSecret))
	if err != nil {
		t.Fatalf("failed to sign fixture token: %v", err)
	}
	return token
}

// CreateTestPeptide inserts a minimal valid catalog entry.
func CreateTestPeptide(t *testing.T, db *gorm.DB, name string) *models.Peptide {
	t.Helper()

	peptide := &models.Peptide{
		Name:            name,
		Sequence:        "Gly-Glu-Pro",
		Category:        "Healing & Recovery",
		Description:     "fixture peptide",
		CommonDosage:    "250 mcg",
		CommonFrequency: "daily",
	}
	if err := db.Create(peptide).Error; err != nil {
		t.Fatalf("failed to create test peptide: %v", err)
	}
	return peptide
}

// CreateTestExperience inserts an active experience owned by the user.
// A nil user makes the record anonymous.
func CreateTestExperience(t *testing.T, db *gorm.DB, user *models.User, peptide *models.Peptide) *models.Experience {
	t.Helper()

	var owner *uuid.UUID
	if user != nil {
		owner = &user.ID
	}
	experience := &models.Experience{
		UserID:      owner,
		PeptideID:   peptide.ID,
		PeptideName: peptide.Name,
		TrackingID:  "TRK-" + uuid.NewString()[:12],
		Dosage:      "250 mcg",
		Frequency:   "daily",
		Duration:    30,
		Route:       "subcutaneous",
		Outcomes:    models.JSONBFloatMap{"energy": 7, "recovery": 8},
		Timeline:    "1-3-days",
		State:       models.ExperienceActive,
	}
	if err := db.Create(experience).Error; err != nil {
		t.Fatalf("failed to create test experience: %v", err)
	}
	return experience
}
