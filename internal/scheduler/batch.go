package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/digest"
	"jobmate/dashboard-service/internal/store"
)

// DigestGenerator is the part of digest.Generator the batch needs. The batch
// runs unattended, so it skips the interactive generation delay.
type DigestGenerator interface {
	GenerateNow(ctx context.Context, userID, date string) ([]digest.Entry, error)
}

// Batch generates the day's digest for every user with saved preferences.
type Batch struct {
	kv     store.KV
	gen    DigestGenerator
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// Result summarises one batch run.
type Result struct {
	Date      string
	Generated int
	Skipped   int
	Failed    int
}

func NewBatch(kv store.KV, gen DigestGenerator, loc *time.Location, logger *zap.Logger) *Batch {
	return &Batch{kv: kv, gen: gen, loc: loc, now: time.Now, logger: logger}
}

// Run executes one batch. A failure for one user is logged and the batch
// moves on; only failing to list users aborts the run.
func (b *Batch) Run(ctx context.Context) (Result, error) {
	res := Result{Date: digest.DateKey(b.now(), b.loc)}

	users, err := store.UsersWith(ctx, b.kv, store.RecordPreferences)
	if err != nil {
		return res, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		b.logger.Info("no users with preferences, nothing to generate")
		return res, nil
	}

	b.logger.Info("digest batch started", zap.String("date", res.Date), zap.Int("users", len(users)))
	for _, userID := range users {
		_, err := b.gen.GenerateNow(ctx, userID, res.Date)
		switch {
		case err == nil:
			res.Generated++
		case errors.Is(err, digest.ErrGenerationInProgress), errors.Is(err, digest.ErrUnconfigured):
			res.Skipped++
		default:
			res.Failed++
			b.logger.Warn("digest generation failed", zap.String("userId", userID), zap.Error(err))
		}
	}

	b.logger.Info("digest batch complete",
		zap.String("date", res.Date),
		zap.Int("generated", res.Generated),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}
