package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"prepagent/internal/models"
)

// PlanStore persists generated study plans.
type PlanStore struct {
	db *gorm.DB
}

func NewPlanStore(db *gorm.DB) *PlanStore {
	return &PlanStore{db: db}
}

func (s *PlanStore) Create(plan *models.StudyPlan) error {
	if err := s.db.Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create study plan: %w", err)
	}
	return nil
}

// LatestWeek returns the highest week number stored for the user, 0 when
// the user has no plans yet.
func (s *PlanStore) LatestWeek(userID string) (int, error) {
	var plan models.StudyPlan
	err := s.db.Where("user_id = ?", userID).Order("week_number DESC").First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up latest plan week: %w", err)
	}
	return plan.WeekNumber, nil
}

// ListByUser returns the user's plans, newest first.
func (s *PlanStore) ListByUser(userID string, limit int) ([]models.StudyPlan, error) {
	var plans []models.StudyPlan
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list study plans: %w", err)
	}
	return plans, nil
}

// BookmarkStore persists saved attempts grouped into named collections.
type BookmarkStore struct {
	db *gorm.DB
}

func NewBookmarkStore(db *gorm.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// Add stores a bookmark, idempotent per (user, attempt, collection).
// The bool result reports whether a new row was created.
func (s *BookmarkStore) Add(bookmark *models.Bookmark) (bool, error) {
	var existing models.Bookmark
	err := s.db.First(&existing,
		"user_id = ? AND attempt_id = ? AND collection_name = ?",
		bookmark.UserID, bookmark.AttemptID, bookmark.CollectionName).Error
	if err == nil {
		*bookmark = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up bookmark: %w", err)
	}

	if err := s.db.Create(bookmark).Error; err != nil {
		return false, fmt.Errorf("failed to create bookmark: %w", err)
	}
	return true, nil
}

// ListByUser returns bookmarks, optionally limited to one collection.
func (s *BookmarkStore) ListByUser(userID, collection string) ([]models.Bookmark, error) {
	query := s.db.Where("user_id = ?", userID)
	if collection != "" {
		query = query.Where("collection_name = ?", collection)
	}

	var bookmarks []models.Bookmark
	if err := query.Order("created_at DESC").Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Collections returns the distinct collection names a user has.
func (s *BookmarkStore) Collections(userID string) ([]string, error) {
	var collections []string
	err := s.db.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Distinct("collection_name").
		Pluck("collection_name", &collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}

// Delete removes a bookmark. Deleting an unknown id is not an error.
func (s *BookmarkStore) Delete(id uint) error {
	if err := s.db.Delete(&models.Bookmark{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
