package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/analytics"
	"prepagent/internal/store"
	"prepagent/internal/utils"
)

// AnalyticsHandler serves aggregated practice statistics. The summary
// is computed from the attempt log on every request, so it can never
// drift from history.
type AnalyticsHandler struct {
	attempts *store.AttemptStore
	logger   *zap.Logger
}

func NewAnalyticsHandler(attempts *store.AttemptStore, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{attempts: attempts, logger: logger}
}

func (h *AnalyticsHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	attempts, err := h.attempts.ListAllByUser(userID)
	if err != nil {
		h.logger.Error("analytics listing failed", zap.Error(err), zap.String("userId", userID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, analytics.Aggregate(attempts))
}
