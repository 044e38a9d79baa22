package export

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"prepagent/internal/models"
	"prepagent/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.AttemptStore) {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	attempts := store.NewAttemptStore(db)
	return NewService(attempts), attempts
}

func seedAttempt(t *testing.T, attempts *store.AttemptStore, title, pattern string, verdict models.Verdict) {
	t.Helper()
	attempt := &models.Attempt{
		UserID:     "u1",
		Title:      title,
		Difficulty: models.DifficultyMedium,
		Verdict:    verdict,
		Language:   "python",
	}
	attempt.SetPatterns([]string{pattern})
	if err := attempts.Insert(attempt); err != nil {
		t.Fatalf("failed seeding attempt: %v", err)
	}
}

func TestMarkdownReport(t *testing.T) {
	svc, attempts := newTestService(t)
	seedAttempt(t, attempts, "Two Sum", "arrays", models.VerdictCorrect)
	seedAttempt(t, attempts, "Course Schedule", "graphs", models.VerdictIncorrect)

	md, err := svc.Markdown("u1")
	if err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}

	for _, want := range []string{
		"# Interview Practice History",
		"**Total Problems:** 2",
		"**Correct:** 1 (50%)",
		"| Medium | 2 | 1 |",
		"| arrays | 1 | 1 | 100.0% |",
		"### Two Sum",
		"- **Verdict:** incorrect",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownEmptyHistory(t *testing.T) {
	svc, _ := newTestService(t)

	md, err := svc.Markdown("nobody")
	if err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}
	if !strings.Contains(md, "**Total Problems:** 0") {
		t.Errorf("empty report should show zero problems:\n%s", md)
	}
	if !strings.Contains(md, "**Correct:** 0 (0%)") {
		t.Errorf("empty report should show 0%% accuracy:\n%s", md)
	}
}

func TestResumeBullets(t *testing.T) {
	svc, attempts := newTestService(t)
	seedAttempt(t, attempts, "Two Sum", "arrays", models.VerdictCorrect)
	seedAttempt(t, attempts, "3Sum", "arrays", models.VerdictCorrect)
	seedAttempt(t, attempts, "Course Schedule", "graphs", models.VerdictIncorrect)

	resp, err := svc.ResumeBullets("u1")
	if err != nil {
		t.Fatalf("ResumeBullets returned error: %v", err)
	}
	if len(resp.Bullets) != 3 {
		t.Fatalf("bullets = %d, want 3", len(resp.Bullets))
	}
	if !strings.Contains(resp.Bullets[0], "3+ algorithmic coding challenges across 2") {
		t.Errorf("volume bullet = %q", resp.Bullets[0])
	}
	if !strings.Contains(resp.Bullets[1], "67% success rate") {
		t.Errorf("accuracy bullet = %q", resp.Bullets[1])
	}
	if !strings.Contains(resp.Bullets[2], "arrays") {
		t.Errorf("proficiency bullet = %q", resp.Bullets[2])
	}
}
