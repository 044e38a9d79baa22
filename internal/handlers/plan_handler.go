package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/middleware"
	"prepagent/internal/models"
	"prepagent/internal/plans"
	"prepagent/internal/utils"
)

const defaultPlanLimit = 5

// PlanHandler serves study plan generation and listing.
type PlanHandler struct {
	service *plans.Service
	logger  *zap.Logger
}

func NewPlanHandler(service *plans.Service, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{service: service, logger: logger}
}

func (h *PlanHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StudyPlanRequest](r)

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error("plan generation failed", zap.Error(err), zap.String("userId", req.UserID))
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *PlanHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(chi.URLParam(r, "userID"), defaultPlanLimit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
