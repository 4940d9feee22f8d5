package types

import "github.com/peptitrace/backend/internal/models"

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the body for POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// CreateExperienceRequest is the body for POST /api/experiences. Website is
// a honeypot field; any submission that fills it is rejected.
type CreateExperienceRequest struct {
	PeptideID    string                        `json:"peptideId" binding:"required"`
	Dosage       string                        `json:"dosage" binding:"required"`
	Frequency    string                        `json:"frequency" binding:"required"`
	Duration     int                           `json:"duration" binding:"required,min=1"`
	Route        string                        `json:"routeOfAdministration" binding:"required"`
	Purposes     []string                      `json:"primaryPurpose"`
	Demographics models.ExperienceDemographics `json:"demographics"`
	Outcomes     map[string]float64            `json:"outcomes" binding:"required"`
	Effects      []string                      `json:"effects"`
	Timeline     string                        `json:"timeline" binding:"required"`
	Story        string                        `json:"story" binding:"max=1000"`
	Stack        []string                      `json:"stack"`
	Sourcing     models.Sourcing               `json:"sourcing"`
	Vendor       models.Vendor                 `json:"vendor"`
	Website      string                        `json:"website"`
}

// UpdateExperienceRequest is the owner-scoped field update for PUT
// /api/experiences/:id. Nil fields are left untouched.
type UpdateExperienceRequest struct {
	Dosage   *string            `json:"dosage"`
	Outcomes map[string]float64 `json:"outcomes"`
	Effects  []string           `json:"effects"`
	Story    *string            `json:"story"`
	Stack    []string           `json:"stack"`
}

// VoteRequest is the body for POST /api/experiences/:id/votes.
type VoteRequest struct {
	Type string `json:"type" binding:"required"`
}

// RejectUserRequest carries the moderator notes for a rejection.
type RejectUserRequest struct {
	Notes string `json:"notes"`
}

// UpdateUserRequest is the self-service profile update body. Role, status
// and credentials are never updatable through this path.
type UpdateUserRequest struct {
	Demographics *models.Demographics `json:"demographics"`
	Preferences  *models.Preferences  `json:"preferences"`
}

// PeptideRequest is the body for peptide create and update.
type PeptideRequest struct {
	Name                string                `json:"name" binding:"required"`
	Sequence            string                `json:"peptide_sequence" binding:"required"`
	Category            string                `json:"category" binding:"required"`
	Description         string                `json:"description" binding:"required"`
	DetailedDescription string                `json:"detailedDescription"`
	Mechanism           string                `json:"mechanism"`
	CommonDosage        string                `json:"commonDosage"`
	CommonFrequency     string                `json:"commonFrequency"`
	CommonEffects       []string              `json:"commonEffects"`
	SideEffects         []string              `json:"sideEffects"`
	DosageRanges        models.DosageRanges   `json:"dosageRanges"`
	Timeline            models.EffectTimeline `json:"timeline"`
}
