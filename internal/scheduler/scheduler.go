// Package scheduler runs the daily alert sweep on a cron spec in the
// configured alert timezone.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one sweep invocation at the scheduled instant.
type Job func(ctx context.Context, now time.Time)

// Scheduler owns the cron loop. Start and Stop are explicit so the main
// process controls the lifecycle; Stop waits for a running job to finish.
type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

// New builds a scheduler that runs job per spec (standard five-field cron)
// evaluated in loc.
func New(spec string, loc *time.Location, job Job, log *slog.Logger) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		job(context.Background(), time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts scheduling and blocks until any in-flight job returns.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
