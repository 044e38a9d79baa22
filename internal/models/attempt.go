package models

import (
	"encoding/json"
	"time"
)

// Attempt stores one submitted solution with structured data for
// history, analytics and spaced repetition. Rows are append-only:
// once written, only the review scheduling fields are ever mutated.
type Attempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:255;not null;index" json:"userId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// Problem metadata
	Title      string     `gorm:"size:500;not null" json:"title"`
	Difficulty Difficulty `gorm:"size:50;not null" json:"difficulty"`
	Patterns   string     `gorm:"type:text" json:"-"` // JSON array of pattern tags
	Statement  string     `gorm:"type:text" json:"statement"`

	// Attempt details
	Language  string `gorm:"size:50" json:"language"`
	Code      string `gorm:"type:text" json:"code"`
	HintsUsed int    `gorm:"default:0" json:"hintsUsed"`

	// Evaluation results
	Verdict            Verdict `gorm:"size:50" json:"verdict"`
	Score              int     `gorm:"default:0" json:"score"`
	TimeComplexity     string  `gorm:"size:50" json:"timeComplexity,omitempty"`
	SpaceComplexity    string  `gorm:"size:50" json:"spaceComplexity,omitempty"`
	EvaluationMarkdown string  `gorm:"type:text" json:"evaluationMarkdown"`

	// Spaced repetition state. NextReviewAt is only ever advanced and
	// EaseFactor never drops below 1.3; both are owned by the scheduler.
	EaseFactor     float64    `gorm:"default:2.5" json:"easeFactor"`
	IntervalDays   int        `gorm:"default:1" json:"intervalDays"`
	Repetitions    int        `gorm:"default:0" json:"repetitions"`
	NextReviewAt   time.Time  `gorm:"index" json:"nextReviewAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`

	// Company association (optional)
	CompanyStyle string `gorm:"size:100" json:"companyStyle,omitempty"`

	// Mock interview session (optional)
	MockSessionID string `gorm:"size:100;index" json:"mockSessionId,omitempty"`
}

// PatternList decodes the stored JSON pattern tags.
func (a *Attempt) PatternList() []string {
	if a.Patterns == "" {
		return []string{}
	}
	var patterns []string
	if err := json.Unmarshal([]byte(a.Patterns), &patterns); err != nil {
		return []string{}
	}
	return patterns
}

// SetPatterns encodes pattern tags into the JSON column.
func (a *Attempt) SetPatterns(patterns []string) {
	if patterns == nil {
		patterns = []string{}
	}
	encoded, _ := json.Marshal(patterns)
	a.Patterns = string(encoded)
}

// MarshalJSON flattens the JSON-encoded patterns column into an array.
func (a Attempt) MarshalJSON() ([]byte, error) {
	type alias Attempt
	return json.Marshal(struct {
		alias
		Patterns []string `json:"patterns"`
	}{
		alias:    alias(a),
		Patterns: a.PatternList(),
	})
}
