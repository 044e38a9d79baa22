package plans

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go.uber.org/zap"

	"prepagent/internal/models"
	"prepagent/internal/prompts"
	"prepagent/internal/store"
)

type stubProvider struct {
	text       string
	lastPrompt string
}

func (s *stubProvider) GenerateText(_ context.Context, prompt, _ string) (*models.GenerationResult, error) {
	s.lastPrompt = prompt
	return &models.GenerationResult{Text: s.text}, nil
}

func (s *stubProvider) GetProviderName() string { return "stub" }

func newTestService(t *testing.T, provider *stubProvider) (*Service, *store.AttemptStore) {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompt templates: %v", err)
	}
	attempts := store.NewAttemptStore(db)
	return NewService(attempts, store.NewPlanStore(db), provider, pm, zap.NewNop()), attempts
}

func seedAttempt(t *testing.T, attempts *store.AttemptStore, pattern string, verdict models.Verdict) {
	t.Helper()
	attempt := &models.Attempt{
		UserID:     "u1",
		Title:      fmt.Sprintf("%s %s %d", pattern, verdict, time.Now().UnixNano()),
		Difficulty: models.DifficultyMedium,
		Verdict:    verdict,
	}
	attempt.SetPatterns([]string{pattern})
	if err := attempts.Insert(attempt); err != nil {
		t.Fatalf("failed seeding attempt: %v", err)
	}
}

func TestGenerateFocusesWeakPatterns(t *testing.T) {
	provider := &stubProvider{text: "## Day 1\nPractice graphs."}
	svc, attempts := newTestService(t, provider)

	// graphs: 0/2 correct, arrays: 2/2 correct.
	seedAttempt(t, attempts, "graphs", models.VerdictIncorrect)
	seedAttempt(t, attempts, "graphs", models.VerdictIncorrect)
	seedAttempt(t, attempts, "arrays", models.VerdictCorrect)
	seedAttempt(t, attempts, "arrays", models.VerdictCorrect)

	resp, err := svc.Generate(context.Background(), &models.StudyPlanRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(resp.FocusPatterns) != 1 || resp.FocusPatterns[0] != "graphs" {
		t.Errorf("focus = %v, want only the weak pattern", resp.FocusPatterns)
	}
	if resp.WeekNumber != 1 {
		t.Errorf("weekNumber = %d, want 1 for a first plan", resp.WeekNumber)
	}
	if !strings.Contains(provider.lastPrompt, "graphs") {
		t.Error("prompt should name the weak patterns")
	}
	if resp.PlanMarkdown != provider.text {
		t.Errorf("planMarkdown = %q", resp.PlanMarkdown)
	}
}

func TestGenerateDefaultFocusForNewUser(t *testing.T) {
	svc, _ := newTestService(t, &stubProvider{text: "plan"})

	resp, err := svc.Generate(context.Background(), &models.StudyPlanRequest{UserID: "fresh"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(resp.FocusPatterns) != len(defaultFocus) {
		t.Fatalf("focus = %v, want defaults for a user without weak spots", resp.FocusPatterns)
	}
}

func TestGenerateIncrementsWeekNumber(t *testing.T) {
	svc, _ := newTestService(t, &stubProvider{text: "plan"})

	first, err := svc.Generate(context.Background(), &models.StudyPlanRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	second, err := svc.Generate(context.Background(), &models.StudyPlanRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if second.WeekNumber != first.WeekNumber+1 {
		t.Errorf("weekNumber = %d after %d", second.WeekNumber, first.WeekNumber)
	}

	plans, err := svc.List("u1", 5)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(plans.Plans) != 2 {
		t.Errorf("stored plans = %d, want 2", len(plans.Plans))
	}
}
