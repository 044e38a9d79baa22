package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go.uber.org/zap"

	"prepagent/internal/config"
	"prepagent/internal/export"
	"prepagent/internal/handlers"
	"prepagent/internal/interview"
	"prepagent/internal/plans"
	"prepagent/internal/prompts"
	"prepagent/internal/review"
	"prepagent/internal/routers"
	"prepagent/internal/session"
	"prepagent/internal/store"
)

func TestAllowedOriginsDefault(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	origins := allowedOrigins()
	if len(origins) != 1 || origins[0] != "http://localhost:5173" {
		t.Fatalf("default origins = %v", origins)
	}

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	origins = allowedOrigins()
	if len(origins) != 2 || origins[1] != "https://b.example" {
		t.Fatalf("env origins = %v", origins)
	}
}

func TestRegisterRoutes(t *testing.T) {
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompt templates: %v", err)
	}

	logger := zap.NewNop()
	attempts := store.NewAttemptStore(db)
	sessions := store.NewSessionStore(db)

	interviewSvc := interview.NewService(nil, pm, logger)
	manager := session.NewManager(sessions, attempts, interviewSvc, interviewSvc, logger)
	t.Cleanup(manager.Shutdown)

	router := chi.NewRouter()
	registerRoutes(router, routers.Handlers{
		Interview: handlers.NewInterviewHandler(interviewSvc, attempts, logger),
		Attempts:  handlers.NewAttemptHandler(attempts, logger),
		Review:    handlers.NewReviewHandler(review.NewService(attempts, logger), logger),
		Session:   handlers.NewSessionHandler(manager, logger),
		Analytics: handlers.NewAnalyticsHandler(attempts, logger),
		Plans:     handlers.NewPlanHandler(plans.NewService(attempts, store.NewPlanStore(db), nil, pm, logger), logger),
		Bookmarks: handlers.NewBookmarkHandler(store.NewBookmarkStore(db), attempts, logger),
		Export:    handlers.NewExportHandler(export.NewService(attempts), logger),
	}, handlers.NewHealthHandler(nil, pm, &config.Config{Provider: "gemini"}, db))

	for _, path := range []string{"/healthz", "/readyz", "/metrics", "/api/v1/prep/analytics/u1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
			t.Errorf("expected %s to be registered, got %d", path, rec.Code)
		}
	}
}
