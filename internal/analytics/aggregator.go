// Package analytics derives summary statistics from the raw attempt log.
// Aggregation is a pure function of the attempts passed in; nothing is
// cached, so the output is always consistent with the log.
package analytics

import (
	"math"
	"sort"
	"time"

	"prepagent/internal/models"
)

// PatternStats counts outcomes for one pattern tag. An attempt tagged
// with N patterns counts fully toward each of them.
type PatternStats struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Partial   int `json:"partial"`
}

// DifficultyStats counts outcomes for one difficulty level.
type DifficultyStats struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// WeekActivity is the attempt count for one ISO calendar week.
type WeekActivity struct {
	WeekStart string `json:"weekStart"` // Monday, formatted 2006-01-02
	Count     int    `json:"count"`
}

// Summary is the full analytics output for one user.
type Summary struct {
	TotalAttempts   int                                   `json:"totalAttempts"`
	CorrectAttempts int                                   `json:"correctAttempts"`
	Accuracy        int                                   `json:"accuracy"` // rounded percentage, 0 when no attempts
	PatternStats    map[string]PatternStats               `json:"patternStats"`
	DifficultyStats map[models.Difficulty]DifficultyStats `json:"difficultyStats"`
	WeeklyActivity  []WeekActivity                        `json:"weeklyActivity"`
}

// Aggregate computes the summary over the given attempts.
func Aggregate(attempts []models.Attempt) Summary {
	summary := Summary{
		PatternStats:    make(map[string]PatternStats),
		DifficultyStats: make(map[models.Difficulty]DifficultyStats),
		WeeklyActivity:  []WeekActivity{},
	}
	for _, d := range models.DifficultyList() {
		summary.DifficultyStats[d] = DifficultyStats{}
	}

	weekly := make(map[string]int)

	for _, attempt := range attempts {
		summary.TotalAttempts++
		if attempt.Verdict == models.VerdictCorrect {
			summary.CorrectAttempts++
		}

		for _, pattern := range attempt.PatternList() {
			stats := summary.PatternStats[pattern]
			stats.Total++
			switch attempt.Verdict {
			case models.VerdictCorrect:
				stats.Correct++
			case models.VerdictIncorrect:
				stats.Incorrect++
			default:
				stats.Partial++
			}
			summary.PatternStats[pattern] = stats
		}

		if stats, ok := summary.DifficultyStats[attempt.Difficulty]; ok {
			stats.Total++
			if attempt.Verdict == models.VerdictCorrect {
				stats.Correct++
			}
			summary.DifficultyStats[attempt.Difficulty] = stats
		}

		weekly[WeekStart(attempt.CreatedAt)]++
	}

	if summary.TotalAttempts > 0 {
		summary.Accuracy = int(math.Round(float64(summary.CorrectAttempts) / float64(summary.TotalAttempts) * 100))
	}

	for week, count := range weekly {
		summary.WeeklyActivity = append(summary.WeeklyActivity, WeekActivity{WeekStart: week, Count: count})
	}
	sort.Slice(summary.WeeklyActivity, func(i, j int) bool {
		return summary.WeeklyActivity[i].WeekStart < summary.WeeklyActivity[j].WeekStart
	})

	return summary
}

// WeekStart returns the Monday of the ISO calendar week containing t,
// formatted as 2006-01-02.
func WeekStart(t time.Time) string {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week started the previous Monday
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return monday.Format("2006-01-02")
}

// WeakPatterns returns pattern tags with accuracy under the threshold,
// ranked weakest first. Patterns without attempts are skipped.
func WeakPatterns(patternStats map[string]PatternStats, threshold float64, limit int) []string {
	type ranked struct {
		pattern  string
		accuracy float64
	}

	var weak []ranked
	for pattern, stats := range patternStats {
		if stats.Total == 0 {
			continue
		}
		accuracy := float64(stats.Correct) / float64(stats.Total)
		if accuracy < threshold {
			weak = append(weak, ranked{pattern: pattern, accuracy: accuracy})
		}
	}

	sort.Slice(weak, func(i, j int) bool {
		if weak[i].accuracy != weak[j].accuracy {
			return weak[i].accuracy < weak[j].accuracy
		}
		return weak[i].pattern < weak[j].pattern
	})

	if limit > 0 && len(weak) > limit {
		weak = weak[:limit]
	}

	patterns := make([]string, 0, len(weak))
	for _, w := range weak {
		patterns = append(patterns, w.pattern)
	}
	return patterns
}
