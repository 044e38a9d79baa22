// Package jobs holds the background schedules. The session reaper is
// the safety net behind the in-memory countdown timers: timers die with
// the process, the reaper scans the store and finishes what they missed.
package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"prepagent/internal/session"
	"prepagent/internal/store"
)

// ReaperConfig contains configuration for the session reaper job.
type ReaperConfig struct {
	Schedule string // cron schedule, e.g. "* * * * *" for every minute
	Enabled  bool
}

// SessionReaperJob force-completes active sessions whose deadline has
// passed.
type SessionReaperJob struct {
	sessions *store.SessionStore
	manager  *session.Manager
	config   *ReaperConfig
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewSessionReaperJob(sessions *store.SessionStore, manager *session.Manager, config *ReaperConfig, logger *zap.Logger) *SessionReaperJob {
	return &SessionReaperJob{
		sessions: sessions,
		manager:  manager,
		config:   config,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start begins the scheduled reaper.
func (j *SessionReaperJob) Start() error {
	if !j.config.Enabled {
		j.logger.Info("session reaper is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if err := j.RunOnce(); err != nil {
			j.logger.Error("session reaper run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule session reaper: %w", err)
	}

	j.cron.Start()
	j.logger.Info("session reaper started", zap.String("schedule", j.config.Schedule))
	return nil
}

// Stop stops the scheduled reaper.
func (j *SessionReaperJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
		j.logger.Info("session reaper stopped")
	}
}

// RunOnce performs a single reaper scan.
func (j *SessionReaperJob) RunOnce() error {
	expired, err := j.sessions.ListExpiredActive(time.Now())
	if err != nil {
		return fmt.Errorf("failed to list expired sessions: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	j.logger.Info("reaping expired sessions", zap.Int("count", len(expired)))
	for _, s := range expired {
		if err := j.manager.Expire(s.ID); err != nil {
			// Keep going; one stuck session must not block the rest.
			j.logger.Error("failed to expire session", zap.String("sessionId", s.ID), zap.Error(err))
		}
	}
	return nil
}
