// Package store holds the gorm-backed persistence collaborators for
// attempts, mock sessions, study plans and bookmarks.
package store

import (
	"gorm.io/gorm"

	"prepagent/internal/models"
)

// AutoMigrate creates or updates all tables owned by this service.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Attempt{},
		&models.MockSession{},
		&models.StudyPlan{},
		&models.Bookmark{},
	)
}
