// Package session orchestrates timed mock interview runs: one active
// session per user, a countdown that force-completes on expiry, and a
// submit loop that evaluates each problem and generates the next one.
package session

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepagent/internal/errs"
	"prepagent/internal/interview"
	"prepagent/internal/models"
	"prepagent/internal/srs"
	"prepagent/internal/store"
)

// Manager owns the session lifecycle. All state transitions go through
// it; stores and handlers never flip a session status themselves.
type Manager struct {
	sessions  *store.SessionStore
	attempts  *store.AttemptStore
	generator interview.ProblemGenerator
	evaluator interview.Evaluator
	logger    *zap.Logger

	// minute is time.Minute in production; tests shrink it so expiry
	// paths run in milliseconds.
	minute time.Duration
	now    func() time.Time

	mu      sync.Mutex
	running map[string]*runtime
}

// runtime is the in-memory half of an active session: the problem the
// candidate is currently solving and the countdown timer. It is lost on
// restart; the reaper job recovers sessions whose timer died with it.
type runtime struct {
	profile models.CandidateProfile
	current *models.ProblemMetadata
	timer   *time.Timer
}

type Option func(*Manager)

// WithMinute overrides the duration of one session "minute".
func WithMinute(d time.Duration) Option {
	return func(m *Manager) { m.minute = d }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(sessions *store.SessionStore, attempts *store.AttemptStore, generator interview.ProblemGenerator, evaluator interview.Evaluator, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions:  sessions,
		attempts:  attempts,
		generator: generator,
		evaluator: evaluator,
		logger:    logger,
		minute:    time.Minute,
		now:       time.Now,
		running:   make(map[string]*runtime),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// sessionConfig resolves a session type to its time limit and ordered
// per-problem difficulties. Custom requests arrive pre-validated with
// defaults already applied.
func sessionConfig(req *models.MockStartRequest) (int, []models.Difficulty) {
	switch req.SessionType {
	case models.SessionPhoneScreen:
		return 30, []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium}
	case models.SessionOnsite:
		return 45, []models.Difficulty{models.DifficultyMedium, models.DifficultyMedium, models.DifficultyHard}
	default:
		return req.TimeLimitMinutes, req.Difficulties
	}
}

// Start creates an active session and generates its first problem. A
// user with an active session gets a conflict. If the first generation
// fails the session row is rolled back so nothing half-started remains.
func (m *Manager) Start(ctx context.Context, req *models.MockStartRequest) (*models.MockStartResponse, error) {
	existing, err := m.sessions.ActiveByUser(req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("session_already_active", "an active mock session already exists; complete or end it first")
	}

	timeLimit, difficulties := sessionConfig(req)
	session := &models.MockSession{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		SessionType:      req.SessionType,
		TimeLimitMinutes: timeLimit,
		NumProblems:      len(difficulties),
		Status:           models.SessionActive,
		StartedAt:        m.now(),
	}
	session.SetDifficulties(difficulties)

	if err := m.sessions.Create(session); err != nil {
		return nil, err
	}

	problem, err := m.generator.Generate(ctx, req.Profile, difficulties[0], nil, "")
	if err != nil {
		if delErr := m.sessions.Delete(session.ID); delErr != nil {
			m.logger.Error("failed to roll back session after generation failure",
				zap.String("sessionId", session.ID), zap.Error(delErr))
		}
		return nil, err
	}

	m.mu.Lock()
	m.running[session.ID] = &runtime{
		profile: req.Profile,
		current: problem,
		timer:   m.startTimer(session),
	}
	m.mu.Unlock()

	m.logger.Info("mock session started",
		zap.String("sessionId", session.ID),
		zap.String("userId", req.UserID),
		zap.String("sessionType", string(req.SessionType)),
		zap.Int("numProblems", session.NumProblems),
		zap.Int("timeLimitMinutes", timeLimit))

	return &models.MockStartResponse{
		SessionID:        session.ID,
		TimeLimitMinutes: timeLimit,
		NumProblems:      session.NumProblems,
		Difficulties:     difficulties,
		Problem:          problem,
	}, nil
}

// startTimer arms the countdown for a session. Caller holds no locks it
// needs; the expiry callback takes the manager lock itself.
func (m *Manager) startTimer(session *models.MockSession) *time.Timer {
	remaining := m.deadline(session).Sub(m.now())
	if remaining < 0 {
		remaining = 0
	}
	id := session.ID
	return time.AfterFunc(remaining, func() {
		if err := m.Expire(id); err != nil {
			m.logger.Error("session expiry failed", zap.String("sessionId", id), zap.Error(err))
		}
	})
}

// Submit evaluates the current problem of an active session, records
// the attempt with its initial review schedule, and advances to the
// next problem. Submitting the final problem completes the session.
func (m *Manager) Submit(ctx context.Context, sessionID string, req *models.MockSubmitRequest) (*models.MockSubmitResponse, error) {
	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionActive {
		return nil, errs.Conflict("session_not_active", "session is already "+string(session.Status))
	}
	if !m.deadline(session).After(m.now()) {
		if err := m.Expire(sessionID); err != nil {
			return nil, err
		}
		return nil, errs.Conflict("session_expired", "the time limit has elapsed; the session was completed")
	}

	m.mu.Lock()
	rt, ok := m.running[sessionID]
	var problem *models.ProblemMetadata
	var profile models.CandidateProfile
	if ok && rt.current != nil {
		problem = rt.current
		profile = rt.profile
	}
	m.mu.Unlock()
	if problem == nil {
		return nil, errs.Conflict("no_current_problem", "no problem is pending for this session; request the current problem first")
	}

	evaluation, err := m.evaluator.Evaluate(ctx, *problem, req.Language, req.Code)
	if err != nil {
		return nil, err
	}

	reviewedAt := m.now()
	state, nextReviewAt := srs.Review(srs.DefaultState(), evaluation.Verdict, reviewedAt)

	attempt := &models.Attempt{
		UserID:             session.UserID,
		Title:              problem.Title,
		Difficulty:         problem.Difficulty,
		Statement:          problem.Statement,
		Language:           req.Language,
		Code:               req.Code,
		Verdict:            evaluation.Verdict,
		Score:              evaluation.Score,
		TimeComplexity:     evaluation.TimeComplexity,
		SpaceComplexity:    evaluation.SpaceComplexity,
		EvaluationMarkdown: evaluation.EvaluationMarkdown,
		EaseFactor:         state.EaseFactor,
		IntervalDays:       state.IntervalDays,
		Repetitions:        state.Repetitions,
		NextReviewAt:       nextReviewAt,
		LastReviewedAt:     &reviewedAt,
		MockSessionID:      session.ID,
	}
	attempt.SetPatterns(problem.Patterns)

	// Commit the attempt and the session advance as one guarded write.
	// If the countdown expired while the evaluator was running, the
	// guard loses against the finished row and nothing is written, so
	// a terminal status can never flip back to active.
	session.ProblemsCompleted++
	terminal := session.ProblemsCompleted >= session.NumProblems
	if terminal {
		now := m.now()
		session.Status = models.SessionCompleted
		session.CompletedAt = &now
	}
	advanced, err := m.sessions.RecordSubmission(attempt, session)
	if err != nil {
		return nil, err
	}
	if !advanced {
		return nil, errs.Conflict("session_not_active", "the session finished while the submission was being evaluated")
	}

	resp := &models.MockSubmitResponse{
		Verdict:            evaluation.Verdict,
		Score:              evaluation.Score,
		EvaluationMarkdown: evaluation.EvaluationMarkdown,
		AttemptID:          attempt.ID,
		ProblemsCompleted:  session.ProblemsCompleted,
	}

	if terminal {
		m.release(session.ID)
		m.logger.Info("mock session finished",
			zap.String("sessionId", session.ID),
			zap.String("status", string(session.Status)),
			zap.Int("problemsCompleted", session.ProblemsCompleted))
		resp.SessionStatus = models.SessionCompleted
		return resp, nil
	}
	resp.SessionStatus = models.SessionActive

	// Generate the next problem outside the critical path. A failure
	// leaves the session active with no pending problem; Problem() is
	// the retry path.
	difficulties := session.DifficultyList()
	next, genErr := m.generator.Generate(ctx, profile, difficulties[session.ProblemsCompleted], nil, "")
	m.mu.Lock()
	if rt, ok := m.running[sessionID]; ok {
		rt.current = next
	}
	m.mu.Unlock()
	if genErr != nil {
		m.logger.Warn("next problem generation failed; session stays active",
			zap.String("sessionId", sessionID), zap.Error(genErr))
	} else {
		resp.NextProblem = next
	}
	return resp, nil
}

// Problem returns the pending problem of an active session, generating
// it if a previous generation attempt failed.
func (m *Manager) Problem(ctx context.Context, sessionID string) (*models.ProblemMetadata, error) {
	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionActive {
		return nil, errs.Conflict("session_not_active", "session is already "+string(session.Status))
	}

	m.mu.Lock()
	rt, ok := m.running[sessionID]
	if ok && rt.current != nil {
		problem := rt.current
		m.mu.Unlock()
		return problem, nil
	}
	var profile models.CandidateProfile
	if ok {
		profile = rt.profile
	}
	m.mu.Unlock()

	difficulties := session.DifficultyList()
	idx := session.ProblemsCompleted
	if idx >= len(difficulties) {
		return nil, errs.Conflict("no_current_problem", "all problems of this session were already submitted")
	}
	problem, err := m.generator.Generate(ctx, profile, difficulties[idx], nil, "")
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if rt, ok := m.running[sessionID]; ok {
		rt.current = problem
	} else {
		m.running[sessionID] = &runtime{profile: profile, current: problem, timer: m.startTimer(session)}
	}
	m.mu.Unlock()
	return problem, nil
}

// Complete finishes a session early at the user's request. Problems
// never submitted count as zero. Completing a terminal session is a
// no-op that reports the recorded result.
func (m *Manager) Complete(sessionID string) (*models.MockCompleteResponse, error) {
	return m.finish(sessionID, models.SessionCompleted)
}

// End abandons a session. The score is still computed so history shows
// what was achieved before bailing out.
func (m *Manager) End(sessionID string) (*models.MockCompleteResponse, error) {
	return m.finish(sessionID, models.SessionAbandoned)
}

// Expire force-completes a session whose countdown ran out.
func (m *Manager) Expire(sessionID string) error {
	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if session.Status.Terminal() {
		return nil
	}
	m.logger.Info("mock session expired", zap.String("sessionId", sessionID))
	return m.finalize(session, models.SessionCompleted)
}

func (m *Manager) finish(sessionID string, status models.SessionStatus) (*models.MockCompleteResponse, error) {
	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		score := 0
		if session.Score != nil {
			score = int(math.Round(*session.Score))
		}
		return &models.MockCompleteResponse{
			Success:           true,
			Score:             score,
			ProblemsCompleted: session.ProblemsCompleted,
			Status:            session.Status,
		}, nil
	}

	if err := m.finalize(session, status); err != nil {
		return nil, err
	}
	score := 0
	if session.Score != nil {
		score = int(math.Round(*session.Score))
	}
	return &models.MockCompleteResponse{
		Success:           true,
		Score:             score,
		ProblemsCompleted: session.ProblemsCompleted,
		Status:            session.Status,
	}, nil
}

// finalize moves a session to a terminal status via a guarded store
// write and releases the runtime. When the guard loses to a concurrent
// transition the session is re-read so the caller reports the result
// that actually stuck.
func (m *Manager) finalize(session *models.MockSession, status models.SessionStatus) error {
	finished, err := m.sessions.FinishActive(session, status, m.now())
	if err != nil {
		return err
	}
	m.release(session.ID)
	if !finished {
		fresh, err := m.sessions.Get(session.ID)
		if err != nil {
			return err
		}
		*session = *fresh
		return nil
	}

	score := 0.0
	if session.Score != nil {
		score = *session.Score
	}
	m.logger.Info("mock session finished",
		zap.String("sessionId", session.ID),
		zap.String("status", string(status)),
		zap.Int("problemsCompleted", session.ProblemsCompleted),
		zap.Float64("score", score))
	return nil
}

// release stops the countdown and drops the in-memory runtime.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	if rt, ok := m.running[sessionID]; ok {
		if rt.timer != nil {
			rt.timer.Stop()
		}
		delete(m.running, sessionID)
	}
	m.mu.Unlock()
}

// Get returns one session with the attempts recorded inside it.
func (m *Manager) Get(sessionID string) (*models.MockSessionResponse, error) {
	session, err := m.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	attempts, err := m.attempts.ListBySession(sessionID)
	if err != nil {
		return nil, err
	}
	return &models.MockSessionResponse{MockSession: *session, Problems: attempts}, nil
}

// History lists a user's sessions, newest first.
func (m *Manager) History(userID string, limit int) (*models.MockHistoryResponse, error) {
	sessions, err := m.sessions.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	return &models.MockHistoryResponse{Sessions: sessions}, nil
}

// deadline mirrors MockSession.Deadline but respects the configured
// minute, so shrunk-clock tests expire on schedule.
func (m *Manager) deadline(session *models.MockSession) time.Time {
	return session.StartedAt.Add(time.Duration(session.TimeLimitMinutes) * m.minute)
}

// Shutdown stops all countdown timers. Active sessions stay active in
// the store; the reaper recovers them after the next start.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rt := range m.running {
		if rt.timer != nil {
			rt.timer.Stop()
		}
		delete(m.running, id)
	}
}
