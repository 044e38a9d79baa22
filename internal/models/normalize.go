package models

import "strings"

// NormalizeLanguage lowercases and trims a language identifier so it
// can be checked against SupportedLanguages.
func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// CanonicalDifficulty maps case-insensitive difficulty input onto the
// canonical Easy/Medium/Hard labels. Unknown input comes back unchanged
// so validation can reject it with the original text.
func CanonicalDifficulty(difficulty string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return Difficulty(strings.TrimSpace(difficulty))
	}
}
