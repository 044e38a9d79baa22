// Package export renders practice history into shareable artifacts: a
// markdown report and resume bullet points.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"prepagent/internal/analytics"
	"prepagent/internal/models"
	"prepagent/internal/store"
)

const (
	maxRecentProblems = 20
	maxPatternRows    = 10
	maxTopPatterns    = 3
)

type Service struct {
	attempts *store.AttemptStore
	now      func() time.Time
}

func NewService(attempts *store.AttemptStore) *Service {
	return &Service{attempts: attempts, now: time.Now}
}

// Markdown renders the user's full history as a markdown report:
// summary, per-difficulty and per-pattern tables, then the most recent
// problems.
func (s *Service) Markdown(userID string) (string, error) {
	attempts, err := s.attempts.ListAllByUser(userID)
	if err != nil {
		return "", err
	}
	summary := analytics.Aggregate(attempts)

	// Aggregation walks oldest-first; the report wants newest first.
	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
	})

	var md strings.Builder
	md.WriteString("# Interview Practice History\n\n")
	fmt.Fprintf(&md, "**User:** %s\n", userID)
	fmt.Fprintf(&md, "**Generated:** %s\n\n", s.now().UTC().Format("2006-01-02 15:04 UTC"))

	md.WriteString("## Summary\n\n")
	fmt.Fprintf(&md, "- **Total Problems:** %d\n", summary.TotalAttempts)
	fmt.Fprintf(&md, "- **Correct:** %d (%d%%)\n\n", summary.CorrectAttempts, summary.Accuracy)

	md.WriteString("### By Difficulty\n\n")
	md.WriteString("| Difficulty | Solved | Correct |\n")
	md.WriteString("|------------|--------|--------|\n")
	for _, difficulty := range models.DifficultyList() {
		stats := summary.DifficultyStats[difficulty]
		fmt.Fprintf(&md, "| %s | %d | %d |\n", difficulty, stats.Total, stats.Correct)
	}

	md.WriteString("\n### By Pattern\n\n")
	md.WriteString("| Pattern | Total | Correct | Accuracy |\n")
	md.WriteString("|---------|-------|---------|----------|\n")
	for _, row := range topPatterns(summary.PatternStats, maxPatternRows) {
		accuracy := 0.0
		if row.stats.Total > 0 {
			accuracy = float64(row.stats.Correct) / float64(row.stats.Total) * 100
		}
		fmt.Fprintf(&md, "| %s | %d | %d | %.1f%% |\n", row.pattern, row.stats.Total, row.stats.Correct, accuracy)
	}

	md.WriteString("\n## Recent Problems\n\n")
	recent := attempts
	if len(recent) > maxRecentProblems {
		recent = recent[:maxRecentProblems]
	}
	for _, attempt := range recent {
		fmt.Fprintf(&md, "### %s\n\n", attempt.Title)
		fmt.Fprintf(&md, "- **Difficulty:** %s\n", attempt.Difficulty)
		fmt.Fprintf(&md, "- **Patterns:** %s\n", strings.Join(attempt.PatternList(), ", "))
		fmt.Fprintf(&md, "- **Verdict:** %s\n", attempt.Verdict)
		fmt.Fprintf(&md, "- **Date:** %s\n\n", attempt.CreatedAt.Format("2006-01-02"))
	}

	return md.String(), nil
}

// ResumeBullets condenses the history into resume-ready bullet points.
func (s *Service) ResumeBullets(userID string) (*models.ResumeBulletsResponse, error) {
	attempts, err := s.attempts.ListAllByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := analytics.Aggregate(attempts)

	bullets := []string{
		fmt.Sprintf("Solved %d+ algorithmic coding challenges across %d data structure and algorithm patterns",
			summary.TotalAttempts, len(summary.PatternStats)),
		fmt.Sprintf("Achieved %d%% success rate on technical interview problems", summary.Accuracy),
	}

	if top := topPatterns(summary.PatternStats, maxTopPatterns); len(top) > 0 {
		names := make([]string, 0, len(top))
		for _, row := range top {
			names = append(names, row.pattern)
		}
		bullets = append(bullets,
			fmt.Sprintf("Demonstrated proficiency in %s problem-solving techniques", strings.Join(names, ", ")))
	}

	return &models.ResumeBulletsResponse{Bullets: bullets}, nil
}

type patternRow struct {
	pattern string
	stats   analytics.PatternStats
}

// topPatterns ranks patterns by attempt volume, alphabetical on ties so
// exports are stable.
func topPatterns(patternStats map[string]analytics.PatternStats, limit int) []patternRow {
	rows := make([]patternRow, 0, len(patternStats))
	for pattern, stats := range patternStats {
		rows = append(rows, patternRow{pattern: pattern, stats: stats})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].stats.Total != rows[j].stats.Total {
			return rows[i].stats.Total > rows[j].stats.Total
		}
		return rows[i].pattern < rows[j].pattern
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
