package interview

import (
	"regexp"
	"strconv"
	"strings"

	"prepagent/internal/models"
)

var (
	complexityPattern = regexp.MustCompile(`O\([^)]+\)`)
	scorePattern      = regexp.MustCompile(`(?i)score:\s*(\d{1,3})`)
)

// parseProblem extracts the Title/Difficulty/Patterns/Problem sections the
// problem prompt enforces. Missing sections fall back to the requested
// difficulty and patterns so a sloppy model response never aborts a session.
func parseProblem(text string, requestedDifficulty models.Difficulty, requestedPatterns []string) *models.ProblemMetadata {
	problem := &models.ProblemMetadata{
		Title:      "Generated Problem",
		Difficulty: requestedDifficulty,
		Patterns:   requestedPatterns,
		Statement:  text,
	}

	lines := strings.Split(text, "\n")
	statementStart := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "#* "))
		switch {
		case strings.HasPrefix(trimmed, "Title:"):
			if v := strings.TrimSpace(strings.TrimPrefix(trimmed, "Title:")); v != "" {
				problem.Title = v
			}
		case strings.HasPrefix(trimmed, "Difficulty:"):
			v := models.Difficulty(strings.TrimSpace(strings.TrimPrefix(trimmed, "Difficulty:")))
			if v.Valid() {
				problem.Difficulty = v
			}
		case strings.HasPrefix(trimmed, "Patterns:"):
			if parsed := splitPatterns(strings.TrimPrefix(trimmed, "Patterns:")); len(parsed) > 0 {
				problem.Patterns = parsed
			}
		case strings.HasPrefix(trimmed, "Problem:"):
			statementStart = i
		}
	}

	if statementStart >= 0 {
		first := strings.TrimSpace(strings.TrimLeft(lines[statementStart], "#* "))
		rest := strings.TrimSpace(strings.TrimPrefix(first, "Problem:"))
		body := strings.TrimSpace(strings.Join(lines[statementStart+1:], "\n"))
		switch {
		case rest != "" && body != "":
			problem.Statement = rest + "\n" + body
		case body != "":
			problem.Statement = body
		case rest != "":
			problem.Statement = rest
		}
	}
	return problem
}

func splitPatterns(raw string) []string {
	parts := strings.Split(raw, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}

// ParseVerdict derives the verdict from evaluation markdown. "incorrect"
// and "wrong" dominate; "correct" without "partially" upgrades; anything
// else stays partially correct.
func ParseVerdict(evaluationMarkdown string) models.Verdict {
	lower := strings.ToLower(evaluationMarkdown)
	switch {
	case strings.Contains(lower, "incorrect") || strings.Contains(lower, "wrong"):
		return models.VerdictIncorrect
	case strings.Contains(lower, "correct") && !strings.Contains(lower, "partially"):
		return models.VerdictCorrect
	default:
		return models.VerdictPartiallyCorrect
	}
}

// ParseScore reads the "Score: NN" line the evaluation prompt asks for,
// clamped to [0,100]. When the line is missing the verdict supplies a
// coarse fallback: 100 correct, 50 partial, 0 incorrect.
func ParseScore(evaluationMarkdown string, verdict models.Verdict) int {
	if m := scorePattern.FindStringSubmatch(evaluationMarkdown); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			if score > 100 {
				return 100
			}
			return score
		}
	}
	switch verdict {
	case models.VerdictCorrect:
		return 100
	case models.VerdictPartiallyCorrect:
		return 50
	default:
		return 0
	}
}

// ParseComplexity returns the first O(...) expression in the markdown,
// or empty when the evaluator never stated one.
func ParseComplexity(evaluationMarkdown string) string {
	return complexityPattern.FindString(evaluationMarkdown)
}
