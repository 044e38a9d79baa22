package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/metrics"
	"prepagent/internal/middleware"
	"prepagent/internal/models"
	"prepagent/internal/session"
	"prepagent/internal/utils"
)

const defaultSessionHistoryLimit = 20

// SessionHandler serves the mock interview lifecycle.
type SessionHandler struct {
	manager *session.Manager
	logger  *zap.Logger
}

func NewSessionHandler(manager *session.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logger: logger}
}

func (h *SessionHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.MockStartRequest](r)

	resp, err := h.manager.Start(r.Context(), req)
	if err != nil {
		h.logger.Error("session start failed", zap.Error(err), zap.String("userId", req.UserID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) ProblemHandler(w http.ResponseWriter, r *http.Request) {
	problem, err := h.manager.Problem(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, problem)
}

func (h *SessionHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	req := middleware.GetValidatedRequest[*models.MockSubmitRequest](r)

	resp, err := h.manager.Submit(r.Context(), sessionID, req)
	if err != nil {
		h.logger.Error("session submit failed", zap.Error(err), zap.String("sessionId", sessionID))
		utils.Error(w, err)
		return
	}
	metrics.CountAttempt(resp.Verdict)
	if resp.SessionStatus.Terminal() {
		metrics.CountSessionFinished(resp.SessionStatus)
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manager.Complete(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.CountSessionFinished(resp.Status)
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) EndHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.manager.End(chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	metrics.CountSessionFinished(resp.Status)
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := defaultSessionHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	resp, err := h.manager.History(userID, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
