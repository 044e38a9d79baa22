package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/export"
	"prepagent/internal/utils"
)

// ExportHandler serves practice-history exports.
type ExportHandler struct {
	service *export.Service
	logger  *zap.Logger
}

func NewExportHandler(service *export.Service, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{service: service, logger: logger}
}

func (h *ExportHandler) MarkdownHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	md, err := h.service.Markdown(userID)
	if err != nil {
		h.logger.Error("markdown export failed", zap.Error(err), zap.String("userId", userID))
		utils.Error(w, err)
		return
	}
	utils.Markdown(w, http.StatusOK, md)
}

func (h *ExportHandler) ResumeBulletsHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ResumeBullets(chi.URLParam(r, "userID"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}
