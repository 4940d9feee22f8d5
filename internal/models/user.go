package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles assignable to a user account.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Account lifecycle states. New registrations start at pending and only
// move via explicit moderation.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Demographics is the optional self-reported profile attached to an account.
type Demographics struct {
	Age               int              `gorm:"check:demo_age = 0 OR (demo_age >= 18 AND demo_age <= 120)" json:"age,omitempty"`
	Gender            string           `gorm:"size:20" json:"gender,omitempty"`
	Weight            float64          `json:"weight,omitempty"`
	Height            float64          `json:"height,omitempty"`
	ActivityLevel     string           `gorm:"size:30" json:"activity_level,omitempty"`
	FitnessGoals      JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"fitness_goals"`
	MedicalConditions JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"medical_conditions"`
	Allergies         JSONBStringArray `gorm:"type:jsonb;default:'[]'" json:"allergies"`
}

// Preferences holds unit, privacy and notification settings.
type Preferences struct {
	WeightUnit           string `gorm:"size:10;default:'kg'" json:"weight_unit"`
	HeightUnit           string `gorm:"size:10;default:'cm'" json:"height_unit"`
	ShareAge             bool   `gorm:"default:true" json:"share_age"`
	ShareGender          bool   `gorm:"default:true" json:"share_gender"`
	ShareWeight          bool   `gorm:"default:false" json:"share_weight"`
	ShareHeight          bool   `gorm:"default:false" json:"share_height"`
	EmailNotifications   bool   `gorm:"default:true" json:"email_notifications"`
	NotifyNewExperiences bool   `gorm:"default:false" json:"notify_new_experiences"`
	WeeklyDigest         bool   `gorm:"default:true" json:"weekly_digest"`
}

type User struct {
	ID             uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Username       string       `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string       `gorm:"not null" json:"-"`
	Role           string       `gorm:"size:20;not null;default:'user'" json:"role"`
	Status         string       `gorm:"size:20;not null;default:'pending'" json:"status"`
	ModeratorNotes string       `gorm:"type:text" json:"moderator_notes,omitempty"`
	ApprovalDate   *time.Time   `json:"approval_date,omitempty"`
	Demographics   Demographics `gorm:"embedded;embeddedPrefix:demo_" json:"demographics"`
	Preferences    Preferences  `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	LastLoginAt    *time.Time   `json:"last_login_at,omitempty"`
	RefreshToken   string       `gorm:"uniqueIndex" json:"-"`
	IsActive       bool         `gorm:"default:true" json:"is_active"`
}

// BeforeCreate assigns the primary key and a fresh refresh-token identifier.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.RefreshToken == "" {
		u.RefreshToken = uuid.NewString()
	}
	return nil
}

// IsApproved reports whether the account may use authenticated routes.
func (u *User) IsApproved() bool {
	return u.Status == StatusApproved
}
