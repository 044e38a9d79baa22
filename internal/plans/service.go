// Package plans generates weekly study plans from a user's analytics:
// the weakest pattern tags become the plan's focus.
package plans

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"prepagent/internal/analytics"
	"prepagent/internal/errs"
	"prepagent/internal/llm"
	"prepagent/internal/models"
	"prepagent/internal/prompts"
	"prepagent/internal/store"
)

const (
	weaknessThreshold = 0.6
	maxFocusPatterns  = 5
	defaultDailyGoal  = 3
)

// defaultFocus is prescribed when the user has no weak patterns yet,
// either because they are new or because everything is above threshold.
var defaultFocus = []string{"arrays", "strings", "trees"}

type Service struct {
	attempts *store.AttemptStore
	plans    *store.PlanStore
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewService(attempts *store.AttemptStore, plans *store.PlanStore, provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Service {
	return &Service{
		attempts: attempts,
		plans:    plans,
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Generate builds a one-week plan around the user's weakest patterns
// and persists it. The week number continues from the latest stored
// plan so consecutive plans read as a course.
func (s *Service) Generate(ctx context.Context, req *models.StudyPlanRequest) (*models.StudyPlanResponse, error) {
	attempts, err := s.attempts.ListAllByUser(req.UserID)
	if err != nil {
		return nil, err
	}
	summary := analytics.Aggregate(attempts)

	focus := analytics.WeakPatterns(summary.PatternStats, weaknessThreshold, maxFocusPatterns)
	if len(focus) == 0 {
		focus = defaultFocus
	}

	companies := strings.Join(req.Profile.TargetCompanies, ", ")
	if companies == "" {
		companies = "FAANG"
	}

	prompt, err := s.prompts.BuildPrompt("plan", map[string]string{
		"TargetRole":      req.Profile.TargetRole,
		"ExperienceLevel": req.Profile.ExperienceLevel,
		"TargetCompanies": companies,
		"Timeframe":       req.Profile.Timeframe,
		"MainGoal":        req.Profile.MainGoal,
		"WeakPatterns":    strings.Join(focus, ", "),
		"EasyStats":       difficultyLine(summary.DifficultyStats[models.DifficultyEasy]),
		"MediumStats":     difficultyLine(summary.DifficultyStats[models.DifficultyMedium]),
		"HardStats":       difficultyLine(summary.DifficultyStats[models.DifficultyHard]),
	})
	if err != nil {
		return nil, errs.Upstream("prompt_error", "failed to build plan prompt", err)
	}

	result, err := s.provider.GenerateText(ctx, prompt, "")
	if err != nil {
		return nil, errs.Upstream("plan_generation_failed", "plan generator failed", err)
	}

	latest, err := s.plans.LatestWeek(req.UserID)
	if err != nil {
		return nil, err
	}

	plan := &models.StudyPlan{
		UserID:          req.UserID,
		WeekNumber:      latest + 1,
		DailyGoal:       defaultDailyGoal,
		DifficultyFocus: string(models.DifficultyMedium),
		PlanMarkdown:    result.Text,
	}
	plan.SetFocusPatterns(focus)
	if err := s.plans.Create(plan); err != nil {
		return nil, err
	}

	s.logger.Info("study plan generated",
		zap.String("userId", req.UserID),
		zap.Int("weekNumber", plan.WeekNumber),
		zap.Strings("focusPatterns", focus))

	return &models.StudyPlanResponse{
		PlanID:        plan.ID,
		WeekNumber:    plan.WeekNumber,
		FocusPatterns: focus,
		PlanMarkdown:  result.Text,
	}, nil
}

// List returns the user's most recent plans, newest first.
func (s *Service) List(userID string, limit int) (*models.StudyPlanListResponse, error) {
	plans, err := s.plans.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	return &models.StudyPlanListResponse{Plans: plans}, nil
}

func difficultyLine(stats analytics.DifficultyStats) string {
	return fmt.Sprintf("%d/%d correct", stats.Correct, stats.Total)
}
