package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Effect polarities.
const (
	EffectPositive = "positive"
	EffectNegative = "negative"
)

// EffectCategories is the closed set of effect classifications.
var EffectCategories = []string{
	"Physical Performance",
	"Recovery",
	"Mental/Cognitive",
	"Appearance",
	"Sleep",
	"Metabolic",
	"Side Effect",
}

// Effect is static reference data describing a named physiological effect.
type Effect struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:20;not null;index" json:"type"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Severity    string    `gorm:"size:20;default:'mild'" json:"severity"`
	Frequency   string    `gorm:"size:20;default:'common'" json:"frequency"`
	IsCommon    bool      `gorm:"default:true" json:"is_common"`
}

func (e *Effect) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
