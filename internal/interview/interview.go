// Package interview wraps the LLM provider behind the collaborator
// interfaces the core consumes: problem generation, solution evaluation
// and incremental hints.
package interview

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"prepagent/internal/errs"
	"prepagent/internal/llm"
	"prepagent/internal/models"
	"prepagent/internal/prompts"
)

// ProblemGenerator produces one personalized interview problem.
type ProblemGenerator interface {
	Generate(ctx context.Context, profile models.CandidateProfile, difficulty models.Difficulty, patterns []string, weaknessContext string) (*models.ProblemMetadata, error)
}

// Evaluator judges one problem/code pair.
type Evaluator interface {
	Evaluate(ctx context.Context, problem models.ProblemMetadata, language, code string) (*models.Evaluation, error)
}

// HintGenerator produces incremental hints without revealing solutions.
type HintGenerator interface {
	Hint(ctx context.Context, problem models.ProblemMetadata, language, codeSoFar string, hintIndex int) (string, error)
}

// Service implements all three collaborators on a single LLM provider.
type Service struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewService(provider llm.Provider, promptManager prompts.PromptProvider, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		prompts:  promptManager,
		logger:   logger,
	}
}

// Generate asks the provider for one problem and parses the enforced
// Title/Difficulty/Patterns/Problem response template. Failures are
// upstream errors; nothing is persisted here.
func (s *Service) Generate(ctx context.Context, profile models.CandidateProfile, difficulty models.Difficulty, patterns []string, weaknessContext string) (*models.ProblemMetadata, error) {
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")

	patternsStr := strings.Join(patterns, ", ")
	if patternsStr == "" {
		patternsStr = "mixed core data structures"
	}

	prompt, err := s.prompts.BuildPrompt("problem", map[string]string{
		"Profile":         string(profileJSON),
		"WeaknessContext": weaknessContext,
		"Difficulty":      string(difficulty),
		"Patterns":        patternsStr,
	})
	if err != nil {
		return nil, errs.Upstream("prompt_error", "failed to build problem prompt", err)
	}

	result, err := s.provider.GenerateText(ctx, prompt, "")
	if err != nil {
		return nil, errs.Upstream("generation_failed", "problem generator failed", err)
	}

	problem := parseProblem(result.Text, difficulty, patterns)
	s.logger.Info("problem generated",
		zap.String("title", problem.Title),
		zap.String("difficulty", string(problem.Difficulty)),
		zap.String("provider", s.provider.GetProviderName()))
	return problem, nil
}

// Evaluate asks the provider to judge the solution and derives the
// verdict, score and complexity from the evaluation markdown.
func (s *Service) Evaluate(ctx context.Context, problem models.ProblemMetadata, language, code string) (*models.Evaluation, error) {
	prompt, err := s.prompts.BuildPrompt("evaluate", map[string]string{
		"Difficulty": string(problem.Difficulty),
		"Patterns":   patternsOrDefault(problem.Patterns),
		"Statement":  problem.Statement,
		"Language":   language,
		"Code":       code,
	})
	if err != nil {
		return nil, errs.Upstream("prompt_error", "failed to build evaluation prompt", err)
	}

	result, err := s.provider.GenerateText(ctx, prompt, "")
	if err != nil {
		return nil, errs.Upstream("evaluation_failed", "evaluator failed", err)
	}

	verdict := ParseVerdict(result.Text)
	evaluation := &models.Evaluation{
		Verdict:            verdict,
		Score:              ParseScore(result.Text, verdict),
		EvaluationMarkdown: result.Text,
		TimeComplexity:     ParseComplexity(result.Text),
	}

	s.logger.Info("solution evaluated",
		zap.String("title", problem.Title),
		zap.String("verdict", string(evaluation.Verdict)),
		zap.Int("score", evaluation.Score))
	return evaluation, nil
}

// Hint asks the provider for hint number hintIndex on the current attempt.
func (s *Service) Hint(ctx context.Context, problem models.ProblemMetadata, language, codeSoFar string, hintIndex int) (string, error) {
	prompt, err := s.prompts.BuildPrompt("hint", map[string]string{
		"HintIndex":  strconv.Itoa(hintIndex),
		"Difficulty": string(problem.Difficulty),
		"Patterns":   patternsOrDefault(problem.Patterns),
		"Statement":  problem.Statement,
		"Language":   language,
		"CodeSoFar":  codeSoFar,
	})
	if err != nil {
		return "", errs.Upstream("prompt_error", "failed to build hint prompt", err)
	}

	result, err := s.provider.GenerateText(ctx, prompt, "")
	if err != nil {
		return "", errs.Upstream("hint_failed", "hint generator failed", err)
	}
	return result.Text, nil
}

func patternsOrDefault(patterns []string) string {
	joined := strings.Join(patterns, ", ")
	if joined == "" {
		return "general algorithms"
	}
	return joined
}
