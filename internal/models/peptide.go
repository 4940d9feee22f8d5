package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Peptide sequences use amino acid codes joined by hyphens, with brackets,
// parentheses and dots allowed for modifications and terminal groups.
var sequencePattern = regexp.MustCompile(`^[A-Za-z0-9\-\[\]\(\)\.]+(-[A-Za-z0-9\-\[\]\(\)\.]+)*$`)

// PeptideCategories is the closed set of catalog categories.
var PeptideCategories = []string{
	"Healing & Recovery",
	"Growth Hormone",
	"Anti-Aging",
	"Performance & Enhancement",
	"Cognitive Enhancement",
	"GLP-1 Agonist",
	"GLP-1/GIP Agonist",
	"GLP-1/GIP/Glucagon Agonist",
	"Immune Support",
	"Fat Loss",
	"Metabolic Control",
	"Weight Management",
	"Glycemic Control",
	"Appetite Regulation",
}

// ValidSequence reports whether s matches the sequence grammar.
func ValidSequence(s string) bool {
	return sequencePattern.MatchString(s)
}

// ValidCategory reports whether c is one of the catalog categories.
func ValidCategory(c string) bool {
	for _, known := range PeptideCategories {
		if c == known {
			return true
		}
	}
	return false
}

// DosageRanges is the three-point dosage guidance on a catalog entry.
type DosageRanges struct {
	Low    string `gorm:"size:50" json:"low"`
	Medium string `gorm:"size:50" json:"medium"`
	High   string `gorm:"size:50" json:"high"`
}

// EffectTimeline describes when effects typically appear and fade.
type EffectTimeline struct {
	Onset    string `gorm:"size:50" json:"onset"`
	Peak     string `gorm:"size:50" json:"peak"`
	Duration string `gorm:"size:50" json:"duration"`
}

type Peptide struct {
	ID                  uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Name                string           `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Sequence            string           `gorm:"not null" json:"peptide_sequence"`
	Category            string           `gorm:"size:50;not null" json:"category"`
	Description         string           `gorm:"type:text;not null" json:"description"`
	DetailedDescription string           `gorm:"type:text" json:"detailed_description"`
	Mechanism           string           `gorm:"type:text" json:"mechanism"`
	CommonDosage        string           `gorm:"size:50" json:"common_dosage"`
	CommonFrequency     string           `gorm:"size:50" json:"common_frequency"`
	CommonEffects       JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"common_effects"`
	SideEffects         JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"side_effects"`
	DosageRanges        DosageRanges     `gorm:"embedded;embeddedPrefix:dosage_" json:"dosage_ranges"`
	Timeline            EffectTimeline   `gorm:"embedded;embeddedPrefix:timeline_" json:"timeline"`
}

func (p *Peptide) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
