package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
	"github.com/peptitrace/backend/internal/seed"
)

// SeedService loads and clears the built-in reference data. Intended for
// development and demo environments.
type SeedService struct {
	db *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{db: db}
}

// SeedResult reports how many rows a seed or clear operation touched.
type SeedResult struct {
	Inserted int64 `json:"inserted,omitempty"`
	Deleted  int64 `json:"deleted,omitempty"`
}

// SeedPeptides replaces the peptide catalog with the built-in one.
func (s *SeedService) SeedPeptides(ctx context.Context) (*SeedResult, error) {
	out := &SeedResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("1 = 1").Delete(&models.Peptide{})
		if result.Error != nil {
			return result.Error
		}
		out.Deleted = result.RowsAffected

		peptides := seed.Peptides()
		for i := range peptides {
			if err := tx.Create(&peptides[i]).Error; err != nil {
				return err
			}
		}
		out.Inserted = int64(len(peptides))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClearPeptides removes every catalog entry.
func (s *SeedService) ClearPeptides(ctx context.Context) (*SeedResult, error) {
	result := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Peptide{})
	if result.Error != nil {
		return nil, result.Error
	}
	return &SeedResult{Deleted: result.RowsAffected}, nil
}

// SeedEffects replaces the effect taxonomy with the one derived from the
// built-in catalog.
func (s *SeedService) SeedEffects(ctx context.Context) (*SeedResult, error) {
	out := &SeedResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("1 = 1").Delete(&models.Effect{})
		if result.Error != nil {
			return result.Error
		}
		out.Deleted = result.RowsAffected

		effects := seed.Effects()
		for i := range effects {
			if err := tx.Create(&effects[i]).Error; err != nil {
				return err
			}
		}
		out.Inserted = int64(len(effects))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClearEffects removes every effect taxonomy entry.
func (s *SeedService) ClearEffects(ctx context.Context) (*SeedResult, error) {
	result := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Effect{})
	if result.Error != nil {
		return nil, result.Error
	}
	return &SeedResult{Deleted: result.RowsAffected}, nil
}

// EnsureModerator creates an approved moderator account if none exists for
// the given email. Idempotent; safe to run at every startup.
func (s *SeedService) EnsureModerator(ctx context.Context, email string, password Plaintext) error {
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user := models.User{
		Username:     deriveUsername(email),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleModerator,
		Status:       models.StatusApproved,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return err
	}
	log.Printf("created initial moderator account %s", email)
	return nil
}
