// Package scheduler wires up the cron job that generates the daily digest
// for every configured user.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps robfig/cron and runs the digest Batch on a schedule.
type Scheduler struct {
	cron   *cron.Cron
	batch  *Batch
	spec   string // standard 5-field cron spec, e.g. "0 9 * * *"
	logger *zap.Logger
}

// New creates a Scheduler firing on spec in loc.
func New(batch *Batch, spec string, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger{logger.Sugar()})),
		batch:  batch,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the job and starts the scheduler. Runs happen on the
// cron goroutine and use ctx for store access.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.batch.Run(ctx); err != nil {
			s.logger.Error("digest batch failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the scheduler and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron stopped")
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
