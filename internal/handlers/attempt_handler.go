package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/errs"
	"prepagent/internal/middleware"
	"prepagent/internal/models"
	"prepagent/internal/store"
	"prepagent/internal/utils"
)

// AttemptHandler serves the attempt history.
type AttemptHandler struct {
	attempts *store.AttemptStore
	logger   *zap.Logger
}

func NewAttemptHandler(attempts *store.AttemptStore, logger *zap.Logger) *AttemptHandler {
	return &AttemptHandler{attempts: attempts, logger: logger}
}

func (h *AttemptHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.HistoryRequest](r)

	filters := store.Filters{
		Difficulty:   req.Difficulty,
		Verdict:      req.Verdict,
		Pattern:      req.Pattern,
		CompanyStyle: req.CompanyStyle,
	}
	attempts, total, err := h.attempts.ListByUser(req.UserID, filters, req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("history listing failed", zap.Error(err), zap.String("userId", req.UserID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.HistoryResponse{Total: total, Attempts: attempts})
}

func (h *AttemptHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "attemptID")
	if err != nil {
		utils.Error(w, err)
		return
	}
	attempt, err := h.attempts.Get(id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, attempt)
}

func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.Validation("invalid_"+name, name+" must be a positive integer")
	}
	return uint(id), nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
