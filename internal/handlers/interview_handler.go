package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepagent/internal/analytics"
	"prepagent/internal/interview"
	"prepagent/internal/metrics"
	"prepagent/internal/middleware"
	"prepagent/internal/models"
	"prepagent/internal/srs"
	"prepagent/internal/store"
	"prepagent/internal/utils"
)

// InterviewHandler serves the practice loop: problem generation, hints
// and solution evaluation.
type InterviewHandler struct {
	service  *interview.Service
	attempts *store.AttemptStore
	logger   *zap.Logger
}

func NewInterviewHandler(service *interview.Service, attempts *store.AttemptStore, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		service:  service,
		attempts: attempts,
		logger:   logger,
	}
}

func (h *InterviewHandler) ProblemHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ProblemRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	problem, err := h.service.Generate(r.Context(), req.Profile, req.Difficulty, req.Patterns, h.weaknessContext(req.UserID))
	if err != nil {
		h.logger.Error("problem generation failed", zap.Error(err), zap.String("request_id", req.RequestID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, problem)
}

func (h *InterviewHandler) CompanyProblemHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CompanyProblemRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	patterns := interview.PatternsForCompany(req.Company)
	problem, err := h.service.Generate(r.Context(), req.Profile, req.Difficulty, patterns, h.weaknessContext(req.UserID))
	if err != nil {
		h.logger.Error("company problem generation failed", zap.Error(err),
			zap.String("company", req.Company), zap.String("request_id", req.RequestID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, problem)
}

func (h *InterviewHandler) HintHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.HintRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	hint, err := h.service.Hint(r.Context(), req.Problem, req.Language, req.CodeSoFar, req.HintIndex)
	if err != nil {
		h.logger.Error("hint generation failed", zap.Error(err), zap.String("request_id", req.RequestID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.HintResponse{
		Hint:      hint,
		HintIndex: req.HintIndex,
		RequestID: req.RequestID,
	})
}

// EvaluateHandler judges a solution, appends the attempt to history and
// schedules its first spaced-repetition review.
func (h *InterviewHandler) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.EvaluateRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	evaluation, err := h.service.Evaluate(r.Context(), req.Problem, req.Language, req.Code)
	if err != nil {
		h.logger.Error("evaluation failed", zap.Error(err), zap.String("request_id", req.RequestID))
		utils.Error(w, err)
		return
	}

	reviewedAt := nowUTC()
	state, nextReviewAt := srs.Review(srs.DefaultState(), evaluation.Verdict, reviewedAt)

	attempt := &models.Attempt{
		UserID:             req.UserID,
		Title:              req.Problem.Title,
		Difficulty:         req.Problem.Difficulty,
		Statement:          req.Problem.Statement,
		Language:           req.Language,
		Code:               req.Code,
		HintsUsed:          req.HintsUsed,
		Verdict:            evaluation.Verdict,
		Score:              evaluation.Score,
		TimeComplexity:     evaluation.TimeComplexity,
		SpaceComplexity:    evaluation.SpaceComplexity,
		EvaluationMarkdown: evaluation.EvaluationMarkdown,
		EaseFactor:         state.EaseFactor,
		IntervalDays:       state.IntervalDays,
		Repetitions:        state.Repetitions,
		NextReviewAt:       nextReviewAt,
		LastReviewedAt:     &reviewedAt,
		CompanyStyle:       req.CompanyStyle,
		MockSessionID:      req.MockSessionID,
	}
	attempt.SetPatterns(req.Problem.Patterns)

	if err := h.attempts.Insert(attempt); err != nil {
		h.logger.Error("failed to persist attempt", zap.Error(err), zap.String("request_id", req.RequestID))
		utils.Error(w, err)
		return
	}
	metrics.CountAttempt(evaluation.Verdict)

	utils.JSON(w, http.StatusOK, models.EvaluateResponse{
		EvaluationMarkdown: evaluation.EvaluationMarkdown,
		AttemptID:          attempt.ID,
		Verdict:            evaluation.Verdict,
		Score:              evaluation.Score,
		NextReviewAt:       nextReviewAt,
		RequestID:          req.RequestID,
	})
}

// weaknessContext summarizes the user's weak patterns for the problem
// prompt. History being unavailable is not fatal; the problem just
// won't be weakness-targeted.
func (h *InterviewHandler) weaknessContext(userID string) string {
	attempts, err := h.attempts.ListAllByUser(userID)
	if err != nil || len(attempts) == 0 {
		return ""
	}
	summary := analytics.Aggregate(attempts)
	weak := analytics.WeakPatterns(summary.PatternStats, 0.6, 5)
	if len(weak) == 0 {
		return ""
	}
	return "The candidate has struggled with these patterns recently: " + strings.Join(weak, ", ") + "."
}

func generateRequestID() string {
	return uuid.New().String()
}

// ensureRequestID generates a request ID if one is not provided
func ensureRequestID(requestID string) string {
	if requestID == "" {
		return generateRequestID()
	}
	return requestID
}
