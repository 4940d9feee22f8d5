package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/types"
)

// ExperienceService is a stateless facade over experience records.
type ExperienceService struct {
	db *gorm.DB
}

func NewExperienceService(db *gorm.DB) *ExperienceService {
	return &ExperienceService{db: db}
}

// NewTrackingID builds a caller-facing experience identifier: "TRK-" plus
// the first 12 characters of a hyphen-stripped uuid.
func NewTrackingID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + raw[:12]
}

// ExperienceList pairs a page of experiences with the total match count.
type ExperienceList struct {
	Experiences []models.Experience `json:"experiences"`
	Total       int64               `json:"total"`
}

// ListFilters narrows and pages experience listings.
type ListFilters struct {
	PeptideID string
	Limit     int
	Offset    int
}

func (f *ListFilters) normalize() {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// Create validates the referenced peptide and the outcome mapping, assigns
// a tracking id and persists the submission. The owner may be nil for
// anonymous submissions.
func (s *ExperienceService) Create(ctx context.Context, userID *uuid.UUID, req types.CreateExperienceRequest) (*models.Experience, error) {
	if len(req.Outcomes) == 0 {
		return nil, ErrEmptyOutcomes
	}
	if !contains(models.ExperienceFrequencies, req.Frequency) {
		return nil, ErrInvalidFrequency
	}
	if !contains(models.ExperienceRoutes, req.Route) {
		return nil, ErrInvalidRoute
	}
	if !contains(models.ExperienceTimelines, req.Timeline) {
		return nil, ErrInvalidTimeline
	}

	var peptide models.Peptide
	if err := s.db.WithContext(ctx).First(&peptide, "id = ?", req.PeptideID).Error; err != nil {
		return nil, ErrPeptideNotFound
	}

	experience := models.Experience{
		UserID:       userID,
		PeptideID:    peptide.ID,
		PeptideName:  peptide.Name,
		TrackingID:   NewTrackingID(),
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Duration:     req.Duration,
		Route:        req.Route,
		Purposes:     req.Purposes,
		Demographics: req.Demographics,
		Outcomes:     req.Outcomes,
		Effects:      req.Effects,
		Timeline:     req.Timeline,
		Story:        req.Story,
		Stack:        req.Stack,
		Sourcing:     req.Sourcing,
		Vendor:       req.Vendor,
		State:        models.ExperienceActive,
	}
	if err := s.db.WithContext(ctx).Create(&experience).Error; err != nil {
		return nil, err
	}
	return &experience, nil
}

// GetByTrackingID looks up a single active experience. The match is exact
// and case-sensitive.
func (s *ExperienceService) GetByTrackingID(ctx context.Context, trackingID string) (*models.Experience, error) {
	var experience models.Experience
	err := s.db.WithContext(ctx).
		Where("tracking_id = ? AND state = ?", trackingID, models.ExperienceActive).
		First(&experience).Error
	if err != nil {
		return nil, ErrExperienceNotFound
	}
	return &experience, nil
}

// List returns active experiences, newest first.
func (s *ExperienceService) List(ctx context.Context, filters ListFilters) (*ExperienceList, error) {
	filters.normalize()

	query := s.db.WithContext(ctx).Model(&models.Experience{}).Where("state = ?", models.ExperienceActive)
	if filters.PeptideID != "" {
		query = query.Where("peptide_id = ?", filters.PeptideID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var experiences []models.Experience
	err := query.
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&experiences).Error
	if err != nil {
		return nil, err
	}
	return &ExperienceList{Experiences: experiences, Total: total}, nil
}

// ListByPeptide returns a peptide's active experiences, newest first.
func (s *ExperienceService) ListByPeptide(ctx context.Context, peptideID string, filters ListFilters) (*ExperienceList, error) {
	filters.PeptideID = peptideID
	return s.List(ctx, filters)
}

// ListByUser returns a user's active experiences, newest first.
func (s *ExperienceService) ListByUser(ctx context.Context, userID string) ([]models.Experience, error) {
	var experiences []models.Experience
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND state = ?", userID, models.ExperienceActive).
		Order("created_at DESC").
		Find(&experiences).Error
	return experiences, err
}

// GetByID returns one active experience.
func (s *ExperienceService) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	var experience models.Experience
	err := s.db.WithContext(ctx).
		Where("id = ? AND state = ?", id, models.ExperienceActive).
		First(&experience).Error
	if err != nil {
		return nil, ErrExperienceNotFound
	}
	return &experience, nil
}

// Update applies an owner-scoped field update. The tracking id, peptide
// reference and vote counters are immutable through this path.
func (s *ExperienceService) Update(ctx context.Context, id string, userID uuid.UUID, req types.UpdateExperienceRequest) (*models.Experience, error) {
	experience, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if experience.UserID == nil || *experience.UserID != userID {
		return nil, ErrNotOwner
	}

	if req.Dosage != nil {
		experience.Dosage = *req.Dosage
	}
	if req.Outcomes != nil {
		if len(req.Outcomes) == 0 {
			return nil, ErrEmptyOutcomes
		}
		experience.Outcomes = req.Outcomes
	}
	if req.Effects != nil {
		experience.Effects = req.Effects
	}
	if req.Story != nil {
		experience.Story = *req.Story
	}
	if req.Stack != nil {
		experience.Stack = req.Stack
	}

	if err := s.db.WithContext(ctx).Save(experience).Error; err != nil {
		return nil, err
	}
	return experience, nil
}

// Delete retracts an experience. The record stays in storage but leaves
// every read path.
func (s *ExperienceService) Delete(ctx context.Context, id string, userID uuid.UUID) error {
	experience, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if experience.UserID == nil || *experience.UserID != userID {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).
		Model(experience).
		Update("state", models.ExperienceRetracted).Error
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
