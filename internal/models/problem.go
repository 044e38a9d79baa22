package models

import "strings"

// CandidateProfile describes the learner the collaborators personalize for.
type CandidateProfile struct {
	Name            string   `json:"name"`
	TargetRole      string   `json:"targetRole"`
	ExperienceLevel string   `json:"experienceLevel"`
	PrimaryLanguage string   `json:"primaryLanguage"`
	TargetCompanies []string `json:"targetCompanies"`
	MainGoal        string   `json:"mainGoal"`
	Timeframe       string   `json:"timeframe"`
}

// ProblemMetadata is one generated coding interview problem.
type ProblemMetadata struct {
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Patterns   []string   `json:"patterns"`
	Statement  string     `json:"statement"`
}

func (p *ProblemMetadata) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return &ErrorResponse{Code: "missing_problem_title", Message: "problem.title is required"}
	}
	if strings.TrimSpace(p.Statement) == "" {
		return &ErrorResponse{Code: "missing_problem_statement", Message: "problem.statement is required"}
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyMedium
	}
	p.Difficulty = CanonicalDifficulty(string(p.Difficulty))
	if !p.Difficulty.Valid() {
		return &ErrorResponse{Code: "invalid_difficulty", Message: "problem.difficulty must be one of Easy, Medium, Hard"}
	}
	return nil
}

// Evaluation is the result of judging one problem/code pair.
type Evaluation struct {
	Verdict            Verdict `json:"verdict"`
	Score              int     `json:"score"` // 0-100
	EvaluationMarkdown string  `json:"evaluationMarkdown"`
	TimeComplexity     string  `json:"timeComplexity,omitempty"`
	SpaceComplexity    string  `json:"spaceComplexity,omitempty"`
}
