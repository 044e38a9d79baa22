package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/metrics"
	"prepagent/internal/middleware"
	"prepagent/internal/models"
	"prepagent/internal/review"
	"prepagent/internal/utils"
)

const defaultDueLimit = 20

// ReviewHandler serves the spaced-repetition queue.
type ReviewHandler struct {
	service *review.Service
	logger  *zap.Logger
}

func NewReviewHandler(service *review.Service, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

func (h *ReviewHandler) DueHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	resp, err := h.service.Due(userID, limit)
	if err != nil {
		h.logger.Error("due listing failed", zap.Error(err), zap.String("userId", userID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *ReviewHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	attemptID, err := parseUintParam(r, "attemptID")
	if err != nil {
		utils.Error(w, err)
		return
	}
	req := middleware.GetValidatedRequest[*models.ReviewCompleteRequest](r)

	resp, err := h.service.Complete(attemptID, *req.WasCorrect)
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.CountReview()
	utils.JSON(w, http.StatusOK, resp)
}
