package models

import (
	"encoding/json"
	"time"
)

// MockSession stores one timed mock interview run. Created in the
// active state, mutated only by the session manager, immutable once
// terminal. At most one active session exists per user.
type MockSession struct {
	ID        string    `gorm:"primaryKey;size:100" json:"id"`
	UserID    string    `gorm:"size:255;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Session config
	SessionType      SessionType `gorm:"size:50" json:"sessionType"`
	TimeLimitMinutes int         `gorm:"default:45" json:"timeLimitMinutes"`
	NumProblems      int         `gorm:"default:2" json:"numProblems"`
	Difficulties     string      `gorm:"type:text" json:"-"` // JSON array, ordered per problem

	// State
	Status      SessionStatus `gorm:"size:50;index" json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt"`

	// Results
	ProblemsCompleted int      `gorm:"default:0" json:"problemsCompleted"`
	Score             *float64 `json:"score"`
}

// DifficultyList decodes the per-problem difficulty sequence.
func (s *MockSession) DifficultyList() []Difficulty {
	if s.Difficulties == "" {
		return []Difficulty{}
	}
	var difficulties []Difficulty
	if err := json.Unmarshal([]byte(s.Difficulties), &difficulties); err != nil {
		return []Difficulty{}
	}
	return difficulties
}

// SetDifficulties encodes the per-problem difficulty sequence.
func (s *MockSession) SetDifficulties(difficulties []Difficulty) {
	if difficulties == nil {
		difficulties = []Difficulty{}
	}
	encoded, _ := json.Marshal(difficulties)
	s.Difficulties = string(encoded)
}

// Deadline is the moment the countdown forces completion.
func (s *MockSession) Deadline() time.Time {
	return s.StartedAt.Add(time.Duration(s.TimeLimitMinutes) * time.Minute)
}

// MarshalJSON flattens the JSON-encoded difficulties column into an array.
func (s MockSession) MarshalJSON() ([]byte, error) {
	type alias MockSession
	return json.Marshal(struct {
		alias
		Difficulties []Difficulty `json:"difficulties"`
	}{
		alias:        alias(s),
		Difficulties: s.DifficultyList(),
	})
}
