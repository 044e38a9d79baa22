package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"prepagent/internal/config"
	"prepagent/internal/export"
	"prepagent/internal/handlers"
	"prepagent/internal/interview"
	"prepagent/internal/jobs"
	"prepagent/internal/llm"
	_ "prepagent/internal/llm/gemini"
	"prepagent/internal/metrics"
	"prepagent/internal/plans"
	"prepagent/internal/prompts"
	"prepagent/internal/review"
	"prepagent/internal/routers"
	"prepagent/internal/session"
	"prepagent/internal/store"
	"prepagent/internal/utils"
)

func registerRoutes(router *chi.Mux, h routers.Handlers, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.PrepRoutes(router, h)
}

// initDatabase opens the PostgreSQL connection and migrates the schema.
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		return strings.Split(raw, ",")
	}
	return []string{"http://localhost:5173"}
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err := utils.NewLogger(cfg.LogEnv)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("port", cfg.Port))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// LLM provider based on configuration
	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize LLM provider", zap.Error(err))
	}

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	attempts := store.NewAttemptStore(db)
	sessions := store.NewSessionStore(db)
	planStore := store.NewPlanStore(db)
	bookmarks := store.NewBookmarkStore(db)

	interviewSvc := interview.NewService(provider, promptManager, logger)
	manager := session.NewManager(sessions, attempts, interviewSvc, interviewSvc, logger)
	reviewSvc := review.NewService(attempts, logger)
	planSvc := plans.NewService(attempts, planStore, provider, promptManager, logger)
	exportSvc := export.NewService(attempts)

	reaper := jobs.NewSessionReaperJob(sessions, manager, &jobs.ReaperConfig{
		Schedule: cfg.ReaperSchedule,
		Enabled:  cfg.ReaperEnabled,
	}, logger)
	if err := reaper.Start(); err != nil {
		logger.Error("Failed to start session reaper", zap.Error(err))
	}

	// Finish sessions that expired while the process was down.
	if err := reaper.RunOnce(); err != nil {
		logger.Error("Startup session sweep failed", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware())

	registerRoutes(router, routers.Handlers{
		Interview: handlers.NewInterviewHandler(interviewSvc, attempts, logger),
		Attempts:  handlers.NewAttemptHandler(attempts, logger),
		Review:    handlers.NewReviewHandler(reviewSvc, logger),
		Session:   handlers.NewSessionHandler(manager, logger),
		Analytics: handlers.NewAnalyticsHandler(attempts, logger),
		Plans:     handlers.NewPlanHandler(planSvc, logger),
		Bookmarks: handlers.NewBookmarkHandler(bookmarks, attempts, logger),
		Export:    handlers.NewExportHandler(exportSvc, logger),
	}, handlers.NewHealthHandler(provider, promptManager, cfg, db))

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Prep service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Prep service shutting down...")

	reaper.Stop()
	manager.Shutdown()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Prep service exited")
}
