package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Experience lifecycle states. Retracted records stay in storage but are
// excluded from every read path.
const (
	ExperienceActive    = "active"
	ExperienceRetracted = "retracted"
)

// ExperienceFrequencies is the closed set of dosing frequencies.
var ExperienceFrequencies = []string{"daily", "every-other-day", "twice-weekly", "weekly", "as-needed"}

// ExperienceRoutes is the closed set of routes of administration.
var ExperienceRoutes = []string{"subcutaneous", "intramuscular", "oral", "nasal"}

// ExperienceTimelines is the closed set of onset timelines.
var ExperienceTimelines = []string{"immediately", "1-3-days", "1-week", "2-weeks", "3-4-weeks", "1-2-months", "no-effects"}

// ExperienceDemographics is the demographic snapshot captured at submission.
type ExperienceDemographics struct {
	AgeRange      string `gorm:"size:20" json:"age_range,omitempty"`
	BiologicalSex string `gorm:"size:20" json:"biological_sex,omitempty"`
	ActivityLevel string `gorm:"size:20" json:"activity_level,omitempty"`
}

// Sourcing records where the substance came from.
type Sourcing struct {
	VendorURL        string  `gorm:"size:255" json:"vendor_url,omitempty"`
	BatchID          string  `gorm:"size:100" json:"batch_id,omitempty"`
	PurityPercentage float64 `json:"purity_percentage,omitempty"`
	VolumeML         float64 `json:"volume_ml,omitempty"`
}

// Vendor is the free-form vendor sub-record.
type Vendor struct {
	Name     string `gorm:"size:100" json:"name,omitempty"`
	Quantity string `gorm:"size:50" json:"quantity,omitempty"`
	BatchID  string `gorm:"size:100" json:"batch_id,omitempty"`
}

type Experience struct {
	ID           uuid.UUID              `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time              `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	UserID       *uuid.UUID             `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	PeptideID    uuid.UUID              `gorm:"type:varchar(36);not null;index" json:"peptide_id"`
	PeptideName  string                 `gorm:"size:100;not null" json:"peptide_name"`
	TrackingID   string                 `gorm:"size:20;uniqueIndex;not null" json:"tracking_id"`
	Dosage       string                 `gorm:"size:50;not null" json:"dosage"`
	Frequency    string                 `gorm:"size:30;not null" json:"frequency"`
	Duration     int                    `gorm:"not null;check:duration >= 1" json:"duration"`
	Route        string                 `gorm:"size:30;not null" json:"route_of_administration"`
	Purposes     JSONBStringArray       `gorm:"type:jsonb;default:'[]'" json:"primary_purpose"`
	Demographics ExperienceDemographics `gorm:"embedded;embeddedPrefix:demo_" json:"demographics"`
	Outcomes     JSONBFloatMap          `gorm:"type:jsonb;not null" json:"outcomes"`
	Effects      JSONBStringArray       `gorm:"type:jsonb;default:'[]'" json:"effects"`
	Timeline     string                 `gorm:"size:20;not null" json:"timeline"`
	Story        string                 `gorm:"size:1000" json:"story,omitempty"`
	Stack        JSONBStringArray       `gorm:"type:jsonb;default:'[]'" json:"stack"`
	Sourcing     Sourcing               `gorm:"embedded;embeddedPrefix:sourcing_" json:"sourcing"`
	Vendor       Vendor                 `gorm:"embedded;embeddedPrefix:vendor_" json:"vendor"`
	HelpfulVotes int                    `gorm:"default:0" json:"helpful_votes"`
	TotalVotes   int                    `gorm:"default:0" json:"total_votes"`
	State        string                 `gorm:"size:20;not null;default:'active'" json:"status"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.State == "" {
		e.State = ExperienceActive
	}
	return nil
}

// AverageRating is the mean of all outcome scores, rounded to one decimal.
func (e *Experience) AverageRating() float64 {
	if len(e.Outcomes) == 0 {
		return 0
	}
	var sum float64
	for _, v := range e.Outcomes {
		sum += v
	}
	return math.Round(sum/float64(len(e.Outcomes))*10) / 10
}
