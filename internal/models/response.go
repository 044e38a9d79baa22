package models

import (
	"encoding/json"
	"time"
)

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse doubles as a validation error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GenerationResult is raw text produced by an LLM provider.
type GenerationResult struct {
	Text      string             `json:"text"`
	RequestID string             `json:"requestId"`
	Metadata  GenerationMetadata `json:"metadata"`
}

// additional information about one generation call
type GenerationMetadata struct {
	ProcessingTime int    `json:"processingTimeMs"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

// EvaluateResponse is returned after judging and persisting a solution.
type EvaluateResponse struct {
	EvaluationMarkdown string    `json:"evaluationMarkdown"`
	AttemptID          uint      `json:"attemptId"`
	Verdict            Verdict   `json:"verdict"`
	Score              int       `json:"score"`
	NextReviewAt       time.Time `json:"nextReviewAt"`
	RequestID          string    `json:"requestId"`
}

// HintResponse wraps one generated hint.
type HintResponse struct {
	Hint      string `json:"hint"`
	HintIndex int    `json:"hintIndex"`
	RequestID string `json:"requestId"`
}

// HistoryResponse pages through attempt history.
type HistoryResponse struct {
	Total    int64     `json:"total"`
	Attempts []Attempt `json:"attempts"`
}

// DueResponse lists problems due for review, soonest-overdue first.
type DueResponse struct {
	DueCount int       `json:"dueCount"`
	Problems []Attempt `json:"problems"`
}

// ReviewCompleteResponse reports the new schedule after a review.
type ReviewCompleteResponse struct {
	Success      bool      `json:"success"`
	NextReviewAt time.Time `json:"nextReviewAt"`
	IntervalDays int       `json:"intervalDays"`
	EaseFactor   float64   `json:"easeFactor"`
	Repetitions  int       `json:"repetitions"`
}

// MockStartResponse reports the configuration of a started session.
type MockStartResponse struct {
	SessionID        string           `json:"sessionId"`
	TimeLimitMinutes int              `json:"timeLimitMinutes"`
	NumProblems      int              `json:"numProblems"`
	Difficulties     []Difficulty     `json:"difficulties"`
	Problem          *ProblemMetadata `json:"problem"`
}

// MockSubmitResponse reports the evaluation and what comes next.
type MockSubmitResponse struct {
	Verdict            Verdict          `json:"verdict"`
	Score              int              `json:"score"`
	EvaluationMarkdown string           `json:"evaluationMarkdown"`
	AttemptID          uint             `json:"attemptId"`
	ProblemsCompleted  int              `json:"problemsCompleted"`
	SessionStatus      SessionStatus    `json:"sessionStatus"`
	NextProblem        *ProblemMetadata `json:"nextProblem,omitempty"`
}

// MockCompleteResponse reports the terminal score of a session.
type MockCompleteResponse struct {
	Success           bool          `json:"success"`
	Score             int           `json:"score"`
	ProblemsCompleted int           `json:"problemsCompleted"`
	Status            SessionStatus `json:"status"`
}

// MockSessionResponse is a session plus its submitted problems.
type MockSessionResponse struct {
	MockSession
	Problems []Attempt `json:"problems"`
}

// MarshalJSON splices the problems into the session object; the
// embedded MockSession marshaler would otherwise shadow them.
func (r MockSessionResponse) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(r.MockSession)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	problems := r.Problems
	if problems == nil {
		problems = []Attempt{}
	}
	encoded, err := json.Marshal(problems)
	if err != nil {
		return nil, err
	}
	fields["problems"] = encoded
	return json.Marshal(fields)
}

// MockHistoryResponse lists past sessions, newest first.
type MockHistoryResponse struct {
	Sessions []MockSession `json:"sessions"`
}

// StudyPlanResponse wraps one freshly generated plan.
type StudyPlanResponse struct {
	PlanID        uint     `json:"planId"`
	WeekNumber    int      `json:"weekNumber"`
	FocusPatterns []string `json:"focusPatterns"`
	PlanMarkdown  string   `json:"planMarkdown"`
}

// StudyPlanListResponse lists stored plans, newest first.
type StudyPlanListResponse struct {
	Plans []StudyPlan `json:"plans"`
}

// BookmarkResponse confirms a bookmark write.
type BookmarkResponse struct {
	Success    bool   `json:"success"`
	BookmarkID uint   `json:"bookmarkId"`
	Message    string `json:"message,omitempty"`
}

// BookmarkListResponse lists bookmarks and known collection names.
type BookmarkListResponse struct {
	Bookmarks   []Bookmark `json:"bookmarks"`
	Collections []string   `json:"collections"`
}

// ResumeBulletsResponse carries generated resume bullet points.
type ResumeBulletsResponse struct {
	Bullets []string `json:"bullets"`
}
