package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go.uber.org/zap"

	"prepagent/internal/models"
	"prepagent/internal/session"
	"prepagent/internal/store"
)

type nullGenerator struct{}

func (nullGenerator) Generate(context.Context, models.CandidateProfile, models.Difficulty, []string, string) (*models.ProblemMetadata, error) {
	return &models.ProblemMetadata{Title: "stub", Difficulty: models.DifficultyEasy, Statement: "stub"}, nil
}

type nullEvaluator struct{}

func (nullEvaluator) Evaluate(context.Context, models.ProblemMetadata, string, string) (*models.Evaluation, error) {
	return &models.Evaluation{Verdict: models.VerdictCorrect, Score: 100}, nil
}

func newTestReaper(t *testing.T) (*SessionReaperJob, *store.SessionStore) {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	sessions := store.NewSessionStore(db)
	attempts := store.NewAttemptStore(db)
	manager := session.NewManager(sessions, attempts, nullGenerator{}, nullEvaluator{}, zap.NewNop())
	t.Cleanup(manager.Shutdown)

	job := NewSessionReaperJob(sessions, manager, &ReaperConfig{Schedule: "* * * * *", Enabled: true}, zap.NewNop())
	return job, sessions
}

func seedSession(t *testing.T, sessions *store.SessionStore, id string, startedAt time.Time) {
	t.Helper()
	s := &models.MockSession{
		ID:               id,
		UserID:           "u-" + id,
		SessionType:      models.SessionPhoneScreen,
		TimeLimitMinutes: 30,
		NumProblems:      2,
		Status:           models.SessionActive,
		StartedAt:        startedAt,
	}
	s.SetDifficulties([]models.Difficulty{models.DifficultyEasy, models.DifficultyMedium})
	if err := sessions.Create(s); err != nil {
		t.Fatalf("failed seeding session: %v", err)
	}
}

func TestRunOnceCompletesExpiredSessions(t *testing.T) {
	job, sessions := newTestReaper(t)
	now := time.Now()

	// Started an hour ago with a 30 minute limit: past deadline.
	seedSession(t, sessions, "expired", now.Add(-time.Hour))
	// Just started: well within the deadline.
	seedSession(t, sessions, "fresh", now)

	if err := job.RunOnce(); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}

	expired, err := sessions.Get("expired")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if expired.Status != models.SessionCompleted {
		t.Errorf("expired session status = %q, want completed", expired.Status)
	}
	if expired.Score == nil || *expired.Score != 0 {
		t.Errorf("expired session score = %v, want 0 with no submissions", expired.Score)
	}

	fresh, err := sessions.Get("fresh")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fresh.Status != models.SessionActive {
		t.Errorf("fresh session status = %q, want still active", fresh.Status)
	}
}

func TestRunOnceWithNothingExpired(t *testing.T) {
	job, sessions := newTestReaper(t)
	seedSession(t, sessions, "fresh", time.Now())

	if err := job.RunOnce(); err != nil {
		t.Fatalf("RunOnce returned error: %v", err)
	}
}

func TestStartDisabled(t *testing.T) {
	job, _ := newTestReaper(t)
	job.config.Enabled = false

	if err := job.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	job.Stop()
}
