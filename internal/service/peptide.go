package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/types"
)

// PeptideService is a stateless facade over the peptide catalog.
type PeptideService struct {
	db *gorm.DB
}

func NewPeptideService(db *gorm.DB) *PeptideService {
	return &PeptideService{db: db}
}

// PeptideWithStats is a catalog entry enriched with experience statistics.
type PeptideWithStats struct {
	models.Peptide
	TotalExperiences int     `json:"total_experiences"`
	AverageRating    float64 `json:"average_rating"`
	Popularity       int     `json:"popularity"`
}

type peptideStats struct {
	count    int
	ratings  float64
	lastSeen time.Time
}

// List returns the full catalog with per-peptide experience counts, average
// ratings and a popularity score. Popularity weights experience volume 0.4
// (capped at 10), average rating 0.4 (out of 10) and 30-day recency 0.2.
func (s *PeptideService) List(ctx context.Context) ([]PeptideWithStats, error) {
	var peptides []models.Peptide
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&peptides).Error; err != nil {
		return nil, err
	}

	var experiences []models.Experience
	if err := s.db.WithContext(ctx).
		Where("state = ?", models.ExperienceActive).
		Find(&experiences).Error; err != nil {
		return nil, err
	}

	stats := map[string]*peptideStats{}
	for i := range experiences {
		exp := &experiences[i]
		st, ok := stats[exp.PeptideName]
		if !ok {
			st = &peptideStats{}
			stats[exp.PeptideName] = st
		}
		st.count++
		st.ratings += exp.AverageRating()
		if exp.CreatedAt.After(st.lastSeen) {
			st.lastSeen = exp.CreatedAt
		}
	}

	now := time.Now()
	out := make([]PeptideWithStats, 0, len(peptides))
	for _, p := range peptides {
		entry := PeptideWithStats{Peptide: p}
		if st, ok := stats[p.Name]; ok && st.count > 0 {
			entry.TotalExperiences = st.count
			entry.AverageRating = st.ratings / float64(st.count)
			entry.Popularity = popularityScore(st, now)
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	return out, nil
}

func popularityScore(st *peptideStats, now time.Time) int {
	experienceScore := math.Min(float64(st.count)/10, 1) * 0.4
	ratingScore := (st.ratings / float64(st.count)) / 10 * 0.4
	recencyScore := 0.0
	if !st.lastSeen.IsZero() {
		age := now.Sub(st.lastSeen)
		recencyScore = math.Max(0, 1-age.Hours()/(30*24)) * 0.2
	}
	return int(math.Round((experienceScore + ratingScore + recencyScore) * 100))
}

// Get returns one catalog entry with its experience statistics.
func (s *PeptideService) Get(ctx context.Context, id string) (*PeptideWithStats, error) {
	var peptide models.Peptide
	if err := s.db.WithContext(ctx).First(&peptide, "id = ?", id).Error; err != nil {
		return nil, ErrPeptideNotFound
	}

	var experiences []models.Experience
	if err := s.db.WithContext(ctx).
		Where("peptide_id = ? AND state = ?", peptide.ID, models.ExperienceActive).
		Find(&experiences).Error; err != nil {
		return nil, err
	}

	entry := &PeptideWithStats{Peptide: peptide}
	if len(experiences) > 0 {
		var sum float64
		for i := range experiences {
			sum += experiences[i].AverageRating()
		}
		entry.TotalExperiences = len(experiences)
		entry.AverageRating = math.Round(sum/float64(len(experiences))*10) / 10
	}
	return entry, nil
}

// Create adds a catalog entry after validating sequence grammar, category
// and name uniqueness.
func (s *PeptideService) Create(ctx context.Context, req types.PeptideRequest) (*models.Peptide, error) {
	if !models.ValidSequence(req.Sequence) {
		return nil, ErrInvalidSequence
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	var existing models.Peptide
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrPeptideExists
	}

	peptide := models.Peptide{
		Name:                strings.TrimSpace(req.Name),
		Sequence:            req.Sequence,
		Category:            req.Category,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		Mechanism:           req.Mechanism,
		CommonDosage:        req.CommonDosage,
		CommonFrequency:     req.CommonFrequency,
		CommonEffects:       req.CommonEffects,
		SideEffects:         req.SideEffects,
		DosageRanges:        req.DosageRanges,
		Timeline:            req.Timeline,
	}
	if err := s.db.WithContext(ctx).Create(&peptide).Error; err != nil {
		return nil, err
	}
	return &peptide, nil
}

// Update replaces a catalog entry's descriptive fields.
func (s *PeptideService) Update(ctx context.Context, id string, req types.PeptideRequest) (*models.Peptide, error) {
	if !models.ValidSequence(req.Sequence) {
		return nil, ErrInvalidSequence
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	var peptide models.Peptide
	if err := s.db.WithContext(ctx).First(&peptide, "id = ?", id).Error; err != nil {
		return nil, ErrPeptideNotFound
	}

	peptide.Name = strings.TrimSpace(req.Name)
	peptide.Sequence = req.Sequence
	peptide.Category = req.Category
	peptide.Description = req.Description
	peptide.DetailedDescription = req.DetailedDescription
	peptide.Mechanism = req.Mechanism
	peptide.CommonDosage = req.CommonDosage
	peptide.CommonFrequency = req.CommonFrequency
	peptide.CommonEffects = req.CommonEffects
	peptide.SideEffects = req.SideEffects
	peptide.DosageRanges = req.DosageRanges
	peptide.Timeline = req.Timeline

	if err := s.db.WithContext(ctx).Save(&peptide).Error; err != nil {
		return nil, err
	}
	return &peptide, nil
}

// Delete removes a catalog entry. Admin only at the route layer.
func (s *PeptideService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Peptide{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPeptideNotFound
	}
	return nil
}

// Search does a case-insensitive substring match over name, description,
// category and sequence.
func (s *PeptideService) Search(ctx context.Context, query string) ([]models.Peptide, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var peptides []models.Peptide
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(sequence) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("name ASC").
		Find(&peptides).Error
	return peptides, err
}
