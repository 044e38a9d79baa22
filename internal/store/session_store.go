package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"prepagent/internal/errs"
	"prepagent/internal/models"
)

// SessionStore persists mock interview sessions.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(session *models.MockSession) error {
	if err := s.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(id string) (*models.MockSession, error) {
	var session models.MockSession
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("session_not_found", fmt.Sprintf("session %s not found", id))
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// RecordSubmission inserts an attempt and advances its session in one
// transaction. The session row is only touched while it is still
// active, so a completion or expiry that won the race rolls the whole
// write back: no orphan attempt, no terminal status reverted. Reports
// false when the guard lost.
func (s *SessionStore) RecordSubmission(attempt *models.Attempt, session *models.MockSession) (bool, error) {
	advanced := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"problems_completed": session.ProblemsCompleted,
		}
		if session.Status.Terminal() {
			updates["status"] = session.Status
			updates["completed_at"] = session.CompletedAt
		}
		res := tx.Model(&models.MockSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionActive).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		advanced = true

		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if session.Status.Terminal() {
			score, err := sessionScore(tx, session)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.MockSession{}).
				Where("id = ?", session.ID).
				Update("score", score).Error; err != nil {
				return err
			}
			session.Score = &score
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to record submission: %w", err)
	}
	return advanced, nil
}

// FinishActive moves a session to a terminal status and stamps its
// final score, but only while the row is still active. Reports false
// when another transition already finished it, leaving the row
// untouched.
func (s *SessionStore) FinishActive(session *models.MockSession, status models.SessionStatus, completedAt time.Time) (bool, error) {
	finished := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		score, err := sessionScore(tx, session)
		if err != nil {
			return err
		}
		res := tx.Model(&models.MockSession{}).
			Where("id = ? AND status = ?", session.ID, models.SessionActive).
			Updates(map[string]interface{}{
				"status":       status,
				"completed_at": completedAt,
				"score":        score,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		finished = true
		session.Status = status
		session.CompletedAt = &completedAt
		session.Score = &score
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to finish session: %w", err)
	}
	return finished, nil
}

// sessionScore is the mean per-problem score over NumProblems, so
// problems never submitted count as zeros.
func sessionScore(tx *gorm.DB, session *models.MockSession) (float64, error) {
	var total int64
	err := tx.Model(&models.Attempt{}).
		Where("mock_session_id = ?", session.ID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if session.NumProblems == 0 {
		return 0, nil
	}
	return float64(total) / float64(session.NumProblems), nil
}

// Delete removes a session row. Used only to roll back a start whose
// first problem generation failed, before anything was observed.
func (s *SessionStore) Delete(id string) error {
	if err := s.db.Delete(&models.MockSession{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ActiveByUser returns the user's active session, or nil when there is
// none. Checked at session start to enforce the one-active invariant.
func (s *SessionStore) ActiveByUser(userID string) (*models.MockSession, error) {
	var session models.MockSession
	err := s.db.First(&session, "user_id = ? AND status = ?", userID, models.SessionActive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	return &session, nil
}

// ListByUser returns the user's sessions, newest first.
func (s *SessionStore) ListByUser(userID string, limit int) ([]models.MockSession, error) {
	var sessions []models.MockSession
	query := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// ListExpiredActive returns active sessions whose countdown deadline has
// already passed. Used by the reaper to recover sessions whose in-memory
// timer was lost to a restart.
func (s *SessionStore) ListExpiredActive(now time.Time) ([]models.MockSession, error) {
	var active []models.MockSession
	if err := s.db.Where("status = ?", models.SessionActive).Find(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	var expired []models.MockSession
	for _, session := range active {
		if !session.Deadline().After(now) {
			expired = append(expired, session)
		}
	}
	return expired, nil
}
