package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"prepagent/internal/models"
)

func seedSession(t *testing.T, s *SessionStore, userID string, status models.SessionStatus, startedAt time.Time, limitMinutes int) *models.MockSession {
	t.Helper()
	session := &models.MockSession{
		ID:               uuid.New().String(),
		UserID:           userID,
		SessionType:      models.SessionPhoneScreen,
		TimeLimitMinutes: limitMinutes,
		NumProblems:      2,
		Status:           status,
		StartedAt:        startedAt,
	}
	session.SetDifficulties([]models.Difficulty{models.DifficultyEasy, models.DifficultyMedium})
	if err := s.Create(session); err != nil {
		t.Fatalf("failed seeding session: %v", err)
	}
	return session
}

func TestActiveByUser(t *testing.T) {
	s := NewSessionStore(newTestDB(t))
	now := time.Now().UTC()

	seedSession(t, s, "u1", models.SessionCompleted, now, 30)

	active, err := s.ActiveByUser("u1")
	if err != nil {
		t.Fatalf("ActiveByUser returned error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active session, got %+v", active)
	}

	created := seedSession(t, s, "u1", models.SessionActive, now, 30)
	active, err = s.ActiveByUser("u1")
	if err != nil {
		t.Fatalf("ActiveByUser returned error: %v", err)
	}
	if active == nil || active.ID != created.ID {
		t.Fatalf("expected active session %s, got %+v", created.ID, active)
	}
}

func TestListExpiredActive(t *testing.T) {
	s := NewSessionStore(newTestDB(t))
	now := time.Now().UTC()

	expired := seedSession(t, s, "u1", models.SessionActive, now.Add(-time.Hour), 30)
	// still running and already-terminal sessions must not be reaped
	seedSession(t, s, "u2", models.SessionActive, now, 30)
	seedSession(t, s, "u3", models.SessionCompleted, now.Add(-time.Hour), 30)

	got, err := s.ListExpiredActive(now)
	if err != nil {
		t.Fatalf("ListExpiredActive returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != expired.ID {
		t.Fatalf("expected only the overdue active session, got %+v", got)
	}
}

func TestSessionRoundTripKeepsDifficulties(t *testing.T) {
	s := NewSessionStore(newTestDB(t))
	session := seedSession(t, s, "u1", models.SessionActive, time.Now().UTC(), 30)

	got, err := s.Get(session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	difficulties := got.DifficultyList()
	if len(difficulties) != 2 || difficulties[0] != models.DifficultyEasy {
		t.Fatalf("unexpected difficulties: %v", difficulties)
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := NewSessionStore(newTestDB(t))
	if _, err := s.Get("missing"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestBookmarkAddIdempotent(t *testing.T) {
	db := newTestDB(t)
	attempts := NewAttemptStore(db)
	bookmarks := NewBookmarkStore(db)

	attempt := seedAttempt(t, attempts, "u1", "Two Sum", models.VerdictCorrect, time.Now())

	first := &models.Bookmark{UserID: "u1", AttemptID: attempt.ID, CollectionName: "Saved"}
	created, err := bookmarks.Add(first)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !created {
		t.Fatal("expected first add to create a bookmark")
	}

	second := &models.Bookmark{UserID: "u1", AttemptID: attempt.ID, CollectionName: "Saved"}
	created, err = bookmarks.Add(second)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created {
		t.Fatal("expected duplicate add to be a no-op")
	}
	if second.ID != first.ID {
		t.Fatalf("expected duplicate add to return existing id %d, got %d", first.ID, second.ID)
	}

	collections, err := bookmarks.Collections("u1")
	if err != nil {
		t.Fatalf("Collections returned error: %v", err)
	}
	if len(collections) != 1 || collections[0] != "Saved" {
		t.Fatalf("unexpected collections: %v", collections)
	}
}

func TestPlanLatestWeek(t *testing.T) {
	plans := NewPlanStore(newTestDB(t))

	week, err := plans.LatestWeek("u1")
	if err != nil {
		t.Fatalf("LatestWeek returned error: %v", err)
	}
	if week != 0 {
		t.Fatalf("expected week 0 with no plans, got %d", week)
	}

	for i := 1; i <= 3; i++ {
		plan := &models.StudyPlan{UserID: "u1", WeekNumber: i, PlanMarkdown: "plan"}
		plan.SetFocusPatterns([]string{"graphs"})
		if err := plans.Create(plan); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	week, err = plans.LatestWeek("u1")
	if err != nil {
		t.Fatalf("LatestWeek returned error: %v", err)
	}
	if week != 3 {
		t.Fatalf("expected latest week 3, got %d", week)
	}
}

func TestRecordSubmissionAdvancesActiveSession(t *testing.T) {
	db := newTestDB(t)
	s := NewSessionStore(db)
	attempts := NewAttemptStore(db)
	now := time.Now().UTC()

	session := seedSession(t, s, "u1", models.SessionActive, now, 30)
	session.ProblemsCompleted = 1
	attempt := &models.Attempt{
		UserID:        "u1",
		Title:         "Two Sum",
		Difficulty:    models.DifficultyEasy,
		Language:      "python",
		Code:          "x",
		Verdict:       models.VerdictCorrect,
		Score:         100,
		MockSessionID: session.ID,
	}

	advanced, err := s.RecordSubmission(attempt, session)
	if err != nil {
		t.Fatalf("RecordSubmission returned error: %v", err)
	}
	if !advanced {
		t.Fatal("submission against an active session should advance it")
	}

	stored, err := s.Get(session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.ProblemsCompleted != 1 {
		t.Errorf("problemsCompleted = %d, want 1", stored.ProblemsCompleted)
	}
	recorded, err := attempts.ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession returned error: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("recorded attempts = %d, want 1", len(recorded))
	}
}

func TestRecordSubmissionLosesAgainstTerminalSession(t *testing.T) {
	db := newTestDB(t)
	s := NewSessionStore(db)
	attempts := NewAttemptStore(db)
	now := time.Now().UTC()

	session := seedSession(t, s, "u1", models.SessionCompleted, now, 30)
	session.ProblemsCompleted = 1
	attempt := &models.Attempt{
		UserID:        "u1",
		Title:         "Two Sum",
		Difficulty:    models.DifficultyEasy,
		Language:      "python",
		Code:          "x",
		Verdict:       models.VerdictCorrect,
		Score:         100,
		MockSessionID: session.ID,
	}

	advanced, err := s.RecordSubmission(attempt, session)
	if err != nil {
		t.Fatalf("RecordSubmission returned error: %v", err)
	}
	if advanced {
		t.Fatal("a terminal session must not accept submissions")
	}

	// The whole write rolls back: no orphan attempt, session untouched.
	recorded, err := attempts.ListBySession(session.ID)
	if err != nil {
		t.Fatalf("ListBySession returned error: %v", err)
	}
	if len(recorded) != 0 {
		t.Errorf("recorded attempts = %d, want none", len(recorded))
	}
	stored, err := s.Get(session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.ProblemsCompleted != 0 {
		t.Errorf("problemsCompleted = %d, want 0", stored.ProblemsCompleted)
	}
}

func TestFinishActiveOnlyTransitionsOnce(t *testing.T) {
	s := NewSessionStore(newTestDB(t))
	now := time.Now().UTC()

	session := seedSession(t, s, "u1", models.SessionActive, now, 30)

	finished, err := s.FinishActive(session, models.SessionCompleted, now)
	if err != nil {
		t.Fatalf("FinishActive returned error: %v", err)
	}
	if !finished {
		t.Fatal("first transition should win")
	}
	if session.Score == nil || *session.Score != 0 {
		t.Errorf("score = %v, want 0 with no attempts", session.Score)
	}

	finished, err = s.FinishActive(session, models.SessionAbandoned, now.Add(time.Second))
	if err != nil {
		t.Fatalf("second FinishActive returned error: %v", err)
	}
	if finished {
		t.Fatal("a terminal session must not transition again")
	}
	stored, err := s.Get(session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Status != models.SessionCompleted {
		t.Errorf("status = %q, want the first transition to stick", stored.Status)
	}
}
