package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"prepagent/internal/errs"
	"prepagent/internal/models"
	"prepagent/internal/srs"
)

// AttemptStore persists the append-only attempt log. Rows are never
// deleted; only the review scheduling fields may be updated after insert.
type AttemptStore struct {
	db *gorm.DB
}

func NewAttemptStore(db *gorm.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

// Filters narrow a history listing. Zero values mean "no filter".
type Filters struct {
	Difficulty   models.Difficulty
	Verdict      models.Verdict
	Pattern      string
	CompanyStyle string
}

// Insert appends one attempt to the log.
func (s *AttemptStore) Insert(attempt *models.Attempt) error {
	if err := s.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	return nil
}

// Get fetches a single attempt by id.
func (s *AttemptStore) Get(id uint) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := s.db.First(&attempt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("attempt_not_found", fmt.Sprintf("attempt %d not found", id))
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return &attempt, nil
}

// UpdateReviewState writes the scheduling triple produced by the SM-2
// scheduler. Concurrent reviews of the same attempt are last-write-wins;
// the scheduler guarantees the due date only ever moves forward from the
// review that produced it.
func (s *AttemptStore) UpdateReviewState(id uint, state srs.State, nextReviewAt, reviewedAt time.Time) error {
	result := s.db.Model(&models.Attempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ease_factor":      state.EaseFactor,
			"interval_days":    state.IntervalDays,
			"repetitions":      state.Repetitions,
			"next_review_at":   nextReviewAt,
			"last_reviewed_at": reviewedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update review state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NotFound("attempt_not_found", fmt.Sprintf("attempt %d not found", id))
	}
	return nil
}

// ListByUser pages through a user's history, newest first.
func (s *AttemptStore) ListByUser(userID string, filters Filters, limit, offset int) ([]models.Attempt, int64, error) {
	query := s.db.Model(&models.Attempt{}).Where("user_id = ?", userID)

	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.Verdict != "" {
		query = query.Where("verdict = ?", filters.Verdict)
	}
	if filters.CompanyStyle != "" {
		query = query.Where("company_style = ?", filters.CompanyStyle)
	}
	if filters.Pattern != "" {
		query = query.Where("patterns LIKE ?", "%"+filters.Pattern+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count attempts: %w", err)
	}

	var attempts []models.Attempt
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&attempts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, total, nil
}

// ListAllByUser returns the user's full attempt log for aggregation.
func (s *AttemptStore) ListAllByUser(userID string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}

// ListBySession returns the attempts recorded inside one mock session.
func (s *AttemptStore) ListBySession(sessionID string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := s.db.Where("mock_session_id = ?", sessionID).Order("created_at ASC").Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to list session attempts: %w", err)
	}
	return attempts, nil
}

// DueProblems returns, per distinct problem title, the most recent
// attempt whose next review time has passed, ordered soonest-overdue
// first and truncated to limit. Deduplication keeps a problem from
// appearing twice because it was attempted multiple times.
func (s *AttemptStore) DueProblems(userID string, now time.Time, limit int) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	latestByTitle := make(map[string]models.Attempt)
	for _, attempt := range attempts {
		if _, seen := latestByTitle[attempt.Title]; !seen {
			latestByTitle[attempt.Title] = attempt
		}
	}

	due := make([]models.Attempt, 0, len(latestByTitle))
	for _, attempt := range latestByTitle {
		if !attempt.NextReviewAt.After(now) {
			due = append(due, attempt)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}
