package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepagent/internal/middleware"
	"prepagent/internal/models"
	"prepagent/internal/store"
	"prepagent/internal/utils"
)

// BookmarkHandler serves saved-problem collections.
type BookmarkHandler struct {
	bookmarks *store.BookmarkStore
	attempts  *store.AttemptStore
	logger    *zap.Logger
}

func NewBookmarkHandler(bookmarks *store.BookmarkStore, attempts *store.AttemptStore, logger *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, attempts: attempts, logger: logger}
}

func (h *BookmarkHandler) AddHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.BookmarkRequest](r)

	// The attempt must exist; bookmarking an unknown id is a 404.
	if _, err := h.attempts.Get(req.AttemptID); err != nil {
		utils.Error(w, err)
		return
	}

	bookmark := &models.Bookmark{
		UserID:         req.UserID,
		AttemptID:      req.AttemptID,
		CollectionName: req.CollectionName,
		Notes:          req.Notes,
	}
	created, err := h.bookmarks.Add(bookmark)
	if err != nil {
		h.logger.Error("bookmark add failed", zap.Error(err), zap.String("userId", req.UserID))
		utils.Error(w, err)
		return
	}

	message := "bookmark created"
	if !created {
		message = "already bookmarked"
	}
	utils.JSON(w, http.StatusOK, models.BookmarkResponse{
		Success:    true,
		BookmarkID: bookmark.ID,
		Message:    message,
	})
}

func (h *BookmarkHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	collection := r.URL.Query().Get("collection")

	bookmarks, err := h.bookmarks.ListByUser(userID, collection)
	if err != nil {
		utils.Error(w, err)
		return
	}
	collections, err := h.bookmarks.Collections(userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.BookmarkListResponse{
		Bookmarks:   bookmarks,
		Collections: collections,
	})
}

func (h *BookmarkHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseUintParam(r, "bookmarkID")
	if err != nil {
		utils.Error(w, err)
		return
	}
	if err := h.bookmarks.Delete(id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
