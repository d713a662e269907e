package service

import (
	"context"
	"fmt"
	"time"

	"smartparking/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type JobService struct {
	sessions repository.SessionRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewJobService(sessions repository.SessionRepository, log *zap.Logger) *JobService {
	return &JobService{sessions: sessions, log: log, now: time.Now}
}

// DeleteExpiredSessions removes every session whose token has expired.
func (s *JobService) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("cron job: failed to delete expired sessions: %w", err)
	}
	if n > 0 {
		s.log.Info("cron job: expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

// Start schedules the jobs and starts the scheduler. Stop the returned
// cron on shutdown.
func (s *JobService) Start(sweepSchedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(sweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.DeleteExpiredSessions(ctx); err != nil {
			s.log.Error("session sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session sweep schedule %q: %w", sweepSchedule, err)
	}
	c.Start()
	return c, nil
}
