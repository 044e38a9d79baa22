package models

// Verdict classifies one submitted solution.
type Verdict string

const (
	VerdictCorrect          Verdict = "correct"
	VerdictPartiallyCorrect Verdict = "partially_correct"
	VerdictIncorrect        Verdict = "incorrect"
)

func (v Verdict) Valid() bool {
	switch v {
	case VerdictCorrect, VerdictPartiallyCorrect, VerdictIncorrect:
		return true
	}
	return false
}

// Difficulty is the human-readable problem difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func DifficultyList() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// SessionStatus is the mock interview session state.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// Terminal reports whether no further transition may leave this status.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionAbandoned
}

// SessionType selects the mock interview configuration.
type SessionType string

const (
	SessionPhoneScreen SessionType = "phone_screen"
	SessionOnsite      SessionType = "onsite"
	SessionCustom      SessionType = "custom"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionPhoneScreen, SessionOnsite, SessionCustom:
		return true
	}
	return false
}

// contains all supported programming languages (in lowercase)
var SupportedLanguages = map[string]bool{
	"python":     true,
	"java":       true,
	"cpp":        true,
	"javascript": true,
	"go":         true,
}

func SupportedLanguagesList() []string {
	return []string{"python", "java", "cpp", "javascript", "go"}
}
