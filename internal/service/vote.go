package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
)

// VoteService manages community feedback on experiences. One vote per
// user per experience; revoting replaces the previous kind.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// VoteSummary is the per-kind vote tally for one experience.
type VoteSummary struct {
	ExperienceID uuid.UUID        `json:"experienceId"`
	Total        int64            `json:"total"`
	ByKind       map[string]int64 `json:"byKind"`
}

// Submit records or replaces a user's vote on an experience. The experience
// counters only move on the first vote: total always, helpful when the kind
// is helpful. A changed kind updates the vote row but not the counters.
func (s *VoteService) Submit(ctx context.Context, userID uuid.UUID, experienceID, kind string) (*models.Vote, error) {
	if !models.ValidVoteKind(kind) {
		return nil, ErrInvalidVoteKind
	}

	var experience models.Experience
	err := s.db.WithContext(ctx).
		Where("id = ? AND state = ?", experienceID, models.ExperienceActive).
		First(&experience).Error
	if err != nil {
		return nil, ErrExperienceNotFound
	}

	var vote models.Vote
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND experience_id = ?", userID, experience.ID).
		First(&vote).Error
	switch {
	case err == nil:
		if vote.Kind != kind {
			if err := s.db.WithContext(ctx).Model(&vote).Update("kind", kind).Error; err != nil {
				return nil, err
			}
			vote.Kind = kind
		}
		return &vote, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}

	vote = models.Vote{
		UserID:       userID,
		ExperienceID: experience.ID,
		Kind:         kind,
	}
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"total_votes": gorm.Expr("total_votes + 1"),
		}
		if kind == "helpful" {
			updates["helpful_votes"] = gorm.Expr("helpful_votes + 1")
		}
		return tx.Model(&models.Experience{}).Where("id = ?", experience.ID).Updates(updates).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &vote, nil
}

// UserVote returns the caller's vote on an experience, if any.
func (s *VoteService) UserVote(ctx context.Context, userID uuid.UUID, experienceID string) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND experience_id = ?", userID, experienceID).
		First(&vote).Error
	if err != nil {
		return nil, ErrVoteNotFound
	}
	return &vote, nil
}

// Summary tallies an experience's votes by kind. Kinds with no votes are
// reported as zero.
func (s *VoteService) Summary(ctx context.Context, experienceID string) (*VoteSummary, error) {
	id, err := uuid.Parse(experienceID)
	if err != nil {
		return nil, ErrExperienceNotFound
	}

	var votes []models.Vote
	if err := s.db.WithContext(ctx).Where("experience_id = ?", id).Find(&votes).Error; err != nil {
		return nil, err
	}

	summary := &VoteSummary{ExperienceID: id, ByKind: map[string]int64{}}
	for _, kind := range models.VoteKinds {
		summary.ByKind[kind] = 0
	}
	for _, v := range votes {
		summary.ByKind[v.Kind]++
		summary.Total++
	}
	return summary, nil
}

// Delete removes the caller's vote on an experience. Counters are not
// decremented; they record participation, not the current tally.
func (s *VoteService) Delete(ctx context.Context, userID uuid.UUID, experienceID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND experience_id = ?", userID, experienceID).
		Delete(&models.Vote{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}
