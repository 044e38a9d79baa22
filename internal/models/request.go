package models

import (
	"strings"
)

// ProblemRequest asks the generator for one personalized problem.
type ProblemRequest struct {
	UserID     string           `json:"userId"`
	Profile    CandidateProfile `json:"profile"`
	Difficulty Difficulty       `json:"difficulty"`
	Patterns   []string         `json:"patterns"`
	RequestID  string           `json:"requestId"`
}

// implements the Validator interface
func (r *ProblemRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	r.Difficulty = CanonicalDifficulty(string(r.Difficulty))
	if !r.Difficulty.Valid() {
		return &ErrorResponse{Code: "invalid_difficulty", Message: "difficulty must be one of Easy, Medium, Hard"}
	}
	return nil
}

// CompanyProblemRequest asks for a problem in a company's interview style.
type CompanyProblemRequest struct {
	UserID     string           `json:"userId"`
	Profile    CandidateProfile `json:"profile"`
	Company    string           `json:"company"`
	Difficulty Difficulty       `json:"difficulty"`
	RequestID  string           `json:"requestId"`
}

func (r *CompanyProblemRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if strings.TrimSpace(r.Company) == "" {
		return &ErrorResponse{Code: "missing_company", Message: "company is required"}
	}
	if r.Difficulty == "" {
		r.Difficulty = DifficultyMedium
	}
	r.Difficulty = CanonicalDifficulty(string(r.Difficulty))
	if !r.Difficulty.Valid() {
		return &ErrorResponse{Code: "invalid_difficulty", Message: "difficulty must be one of Easy, Medium, Hard"}
	}
	return nil
}

// HintRequest asks for one incremental hint on the current attempt.
type HintRequest struct {
	UserID    string          `json:"userId"`
	Problem   ProblemMetadata `json:"problem"`
	Language  string          `json:"language"`
	CodeSoFar string          `json:"codeSoFar"`
	HintIndex int             `json:"hintIndex"`
	RequestID string          `json:"requestId"`
}

func (r *HintRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if err := r.Problem.Validate(); err != nil {
		return err
	}
	r.Language = NormalizeLanguage(r.Language)
	if r.Language == "" {
		return &ErrorResponse{Code: "missing_language", Message: "language is required"}
	}
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{Code: "unsupported_language", Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", ")}
	}
	if r.HintIndex < 1 {
		r.HintIndex = 1
	}
	return nil
}

// EvaluateRequest submits one solution for evaluation. The resulting
// attempt is appended to history and scheduled for first review.
type EvaluateRequest struct {
	UserID        string           `json:"userId"`
	Profile       CandidateProfile `json:"profile"`
	Problem       ProblemMetadata  `json:"problem"`
	Language      string           `json:"language"`
	Code          string           `json:"code"`
	HintsUsed     int              `json:"hintsUsed"`
	CompanyStyle  string           `json:"companyStyle,omitempty"`
	MockSessionID string           `json:"mockSessionId,omitempty"`
	RequestID     string           `json:"requestId"`
}

func (r *EvaluateRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	if err := r.Problem.Validate(); err != nil {
		return err
	}
	r.Language = NormalizeLanguage(r.Language)
	if r.Language == "" {
		return &ErrorResponse{Code: "missing_language", Message: "language is required"}
	}
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{Code: "unsupported_language", Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", ")}
	}
	if r.HintsUsed < 0 {
		r.HintsUsed = 0
	}
	return nil
}

// HistoryRequest filters the attempt history.
type HistoryRequest struct {
	UserID       string     `json:"userId"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
	Pattern      string     `json:"pattern,omitempty"`
	Verdict      Verdict    `json:"verdict,omitempty"`
	CompanyStyle string     `json:"companyStyle,omitempty"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
}

func (r *HistoryRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if r.Difficulty != "" {
		r.Difficulty = CanonicalDifficulty(string(r.Difficulty))
		if !r.Difficulty.Valid() {
			return &ErrorResponse{Code: "invalid_difficulty", Message: "difficulty must be one of Easy, Medium, Hard"}
		}
	}
	if r.Verdict != "" && !r.Verdict.Valid() {
		return &ErrorResponse{Code: "invalid_verdict", Message: "verdict must be one of correct, partially_correct, incorrect"}
	}
	if r.Limit <= 0 || r.Limit > 200 {
		r.Limit = 50
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return nil
}

// MockStartRequest starts a timed mock interview session.
type MockStartRequest struct {
	UserID      string           `json:"userId"`
	Profile     CandidateProfile `json:"profile"`
	SessionType SessionType      `json:"sessionType"`

	// Custom sessions only; ignored for phone_screen and onsite.
	TimeLimitMinutes int          `json:"timeLimitMinutes,omitempty"`
	NumProblems      int          `json:"numProblems,omitempty"`
	Difficulties     []Difficulty `json:"difficulties,omitempty"`
}

func (r *MockStartRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if !r.SessionType.Valid() {
		return &ErrorResponse{Code: "invalid_session_type", Message: "sessionType must be one of phone_screen, onsite, custom"}
	}
	if r.SessionType == SessionCustom {
		if r.TimeLimitMinutes <= 0 {
			r.TimeLimitMinutes = 45
		}
		if len(r.Difficulties) == 0 {
			if r.NumProblems <= 0 {
				r.NumProblems = 2
			}
			for i := 0; i < r.NumProblems; i++ {
				r.Difficulties = append(r.Difficulties, DifficultyMedium)
			}
		}
		for i, d := range r.Difficulties {
			r.Difficulties[i] = CanonicalDifficulty(string(d))
			if !r.Difficulties[i].Valid() {
				return &ErrorResponse{Code: "invalid_difficulty", Message: "difficulties must contain only Easy, Medium, Hard"}
			}
		}
		r.NumProblems = len(r.Difficulties)
	}
	return nil
}

// MockSubmitRequest submits the current problem of an active session.
type MockSubmitRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

func (r *MockSubmitRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	r.Language = NormalizeLanguage(r.Language)
	if r.Language == "" {
		return &ErrorResponse{Code: "missing_language", Message: "language is required"}
	}
	if !SupportedLanguages[r.Language] {
		return &ErrorResponse{Code: "unsupported_language", Message: "Language not supported. Supported languages: " + strings.Join(SupportedLanguagesList(), ", ")}
	}
	return nil
}

// ReviewCompleteRequest marks a due review as done.
type ReviewCompleteRequest struct {
	WasCorrect *bool `json:"wasCorrect"`
}

func (r *ReviewCompleteRequest) Validate() error {
	if r.WasCorrect == nil {
		return &ErrorResponse{Code: "missing_was_correct", Message: "wasCorrect is required"}
	}
	return nil
}

// StudyPlanRequest asks the plan generator for a weekly plan.
type StudyPlanRequest struct {
	UserID  string           `json:"userId"`
	Profile CandidateProfile `json:"profile"`
}

func (r *StudyPlanRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	return nil
}

// BookmarkRequest saves an attempt into a collection.
type BookmarkRequest struct {
	UserID         string `json:"userId"`
	AttemptID      uint   `json:"attemptId"`
	CollectionName string `json:"collectionName"`
	Notes          string `json:"notes,omitempty"`
}

func (r *BookmarkRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ErrorResponse{Code: "missing_user_id", Message: "userId is required"}
	}
	if r.AttemptID == 0 {
		return &ErrorResponse{Code: "missing_attempt_id", Message: "attemptId is required"}
	}
	if strings.TrimSpace(r.CollectionName) == "" {
		r.CollectionName = "Saved"
	}
	return nil
}
