package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteKinds is the closed set of opinions a voter can attach to an experience.
var VoteKinds = []string{"helpful", "not-helpful", "detailed", "concerning"}

// ValidVoteKind reports whether k is a recognized vote kind.
func ValidVoteKind(k string) bool {
	for _, known := range VoteKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Vote is one user's opinion of one experience. The compound unique index
// guarantees at most one record per (voter, experience) pair; a repeat vote
// updates the kind in place.
type Vote struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_user_experience" json:"user_id"`
	ExperienceID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_votes_user_experience;index" json:"experience_id"`
	Kind         string    `gorm:"size:20;not null" json:"vote_type"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
