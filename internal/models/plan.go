package models

import (
	"encoding/json"
	"time"
)

// StudyPlan stores one generated weekly plan. Plans are never mutated;
// a newer plan with the same or later week number supersedes older ones.
type StudyPlan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:255;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	WeekNumber      int    `gorm:"default:1" json:"weekNumber"`
	FocusPatterns   string `gorm:"type:text" json:"-"` // JSON array, ranked weakest first
	DailyGoal       int    `gorm:"default:3" json:"dailyGoal"`
	DifficultyFocus string `gorm:"size:50" json:"difficultyFocus"`
	PlanMarkdown    string `gorm:"type:text" json:"planMarkdown"`
}

// FocusPatternList decodes the snapshot of weakness-ranked patterns.
func (p *StudyPlan) FocusPatternList() []string {
	if p.FocusPatterns == "" {
		return []string{}
	}
	var patterns []string
	if err := json.Unmarshal([]byte(p.FocusPatterns), &patterns); err != nil {
		return []string{}
	}
	return patterns
}

// SetFocusPatterns encodes the weakness-ranked pattern snapshot.
func (p *StudyPlan) SetFocusPatterns(patterns []string) {
	if patterns == nil {
		patterns = []string{}
	}
	encoded, _ := json.Marshal(patterns)
	p.FocusPatterns = string(encoded)
}

// MarshalJSON flattens the JSON-encoded focus patterns column.
func (p StudyPlan) MarshalJSON() ([]byte, error) {
	type alias StudyPlan
	return json.Marshal(struct {
		alias
		FocusPatterns []string `json:"focusPatterns"`
	}{
		alias:         alias(p),
		FocusPatterns: p.FocusPatternList(),
	})
}

// Bookmark stores a saved problem attempt inside a named collection.
type Bookmark struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"size:255;not null;index" json:"userId"`
	AttemptID      uint      `gorm:"not null" json:"attemptId"`
	CollectionName string    `gorm:"size:255;default:Saved" json:"collectionName"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
