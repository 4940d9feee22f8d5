package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
)

// EffectService serves the effect taxonomy used to tag experiences.
type EffectService struct {
	db *gorm.DB
}

func NewEffectService(db *gorm.DB) *EffectService {
	return &EffectService{db: db}
}

// EffectFilters narrows effect listings.
type EffectFilters struct {
	Type     string
	Category string
}

// List returns the taxonomy, optionally filtered by type and category,
// ordered by name.
func (s *EffectService) List(ctx context.Context, filters EffectFilters) ([]models.Effect, error) {
	query := s.db.WithContext(ctx).Model(&models.Effect{})
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	var effects []models.Effect
	err := query.Order("name ASC").Find(&effects).Error
	return effects, err
}
