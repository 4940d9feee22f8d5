package database

import (
	"gorm.io/gorm"

	"github.com/peptitrace/backend/internal/models"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Peptide{},
		&models.Experience{},
		&models.Vote{},
		&models.Effect{},
	)
}
