// Package review is the spaced-repetition surface: what is due now, and
// recording the outcome of a finished review.
package review

import (
	"time"

	"go.uber.org/zap"

	"prepagent/internal/models"
	"prepagent/internal/srs"
	"prepagent/internal/store"
)

type Service struct {
	attempts *store.AttemptStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(attempts *store.AttemptStore, logger *zap.Logger) *Service {
	return &Service{attempts: attempts, logger: logger, now: time.Now}
}

// Due lists the problems whose next review time has passed, soonest
// overdue first.
func (s *Service) Due(userID string, limit int) (*models.DueResponse, error) {
	due, err := s.attempts.DueProblems(userID, s.now(), limit)
	if err != nil {
		return nil, err
	}
	return &models.DueResponse{DueCount: len(due), Problems: due}, nil
}

// Complete records one finished review and reschedules the attempt.
// A correct recall is graded quality 5, a failed one quality 0; partial
// credit is reserved for fresh evaluations, not flash reviews.
func (s *Service) Complete(attemptID uint, wasCorrect bool) (*models.ReviewCompleteResponse, error) {
	attempt, err := s.attempts.Get(attemptID)
	if err != nil {
		return nil, err
	}

	verdict := models.VerdictIncorrect
	if wasCorrect {
		verdict = models.VerdictCorrect
	}

	prior := srs.State{
		EaseFactor:   attempt.EaseFactor,
		IntervalDays: attempt.IntervalDays,
		Repetitions:  attempt.Repetitions,
	}
	reviewedAt := s.now()
	next, nextReviewAt := srs.Review(prior, verdict, reviewedAt)

	if err := s.attempts.UpdateReviewState(attemptID, next, nextReviewAt, reviewedAt); err != nil {
		return nil, err
	}

	s.logger.Info("review completed",
		zap.Uint("attemptId", attemptID),
		zap.Bool("wasCorrect", wasCorrect),
		zap.Int("intervalDays", next.IntervalDays),
		zap.Time("nextReviewAt", nextReviewAt))

	return &models.ReviewCompleteResponse{
		Success:      true,
		NextReviewAt: nextReviewAt,
		IntervalDays: next.IntervalDays,
		EaseFactor:   next.EaseFactor,
		Repetitions:  next.Repetitions,
	}, nil
}
