// Package ledger records each user's application status per job and keeps a
// bounded, newest-first history of every status change.
//
// The history is a forward-only audit log: entries are never edited or
// removed except when they fall off the end past HistoryLimit.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/store"
)

// HistoryLimit is the maximum number of history entries kept per user.
const HistoryLimit = 50

// JobRef identifies the job a transition applies to. Title and Company are
// copied into the history record as they are at transition time.
type JobRef struct {
	ID      string
	Title   string
	Company string
}

// RefOf builds a JobRef from a catalog listing.
func RefOf(j model.Job) JobRef {
	return JobRef{ID: j.ID, Title: j.Title, Company: j.Company}
}

// Ledger reads and writes the status map and history records.
type Ledger struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time
	writes store.KeyedMutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(kv store.KV, logger *zap.Logger, opts ...Option) *Ledger {
	l := &Ledger{kv: kv, logger: logger, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// StatusOf returns the status recorded for jobID, or Not Applied.
func StatusOf(statuses map[string]model.JobStatus, jobID string) model.JobStatus {
	if s, ok := statuses[jobID]; ok {
		return s
	}
	return model.StatusNotApplied
}

// CurrentStatuses returns the job-id to status map. Unknown status values
// and malformed records are dropped.
func (l *Ledger) CurrentStatuses(ctx context.Context, userID string) (map[string]model.JobStatus, error) {
	var raw map[string]string
	if err := l.read(ctx, userID, store.RecordStatuses, &raw); err != nil {
		return nil, err
	}
	statuses := make(map[string]model.JobStatus, len(raw))
	for id, s := range raw {
		st, err := model.ParseStatus(s)
		if err != nil {
			l.logger.Warn("dropping unknown status", zap.String("userId", userID),
				zap.String("jobId", id), zap.String("status", s))
			continue
		}
		statuses[id] = st
	}
	return statuses, nil
}

// History returns the transition log, newest first, at most HistoryLimit long.
func (l *Ledger) History(ctx context.Context, userID string) ([]model.StatusUpdate, error) {
	var history []model.StatusUpdate
	if err := l.read(ctx, userID, store.RecordStatusHistory, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []model.StatusUpdate{}
	}
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	return history, nil
}

// RecordTransition sets the job's current status, prepends a history entry
// and persists both records in one write. It returns the updated map.
// Transitions for the same user are applied one at a time.
func (l *Ledger) RecordTransition(ctx context.Context, userID string, job JobRef, status model.JobStatus) (map[string]model.JobStatus, error) {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return nil, err
	}

	unlock := l.writes.Lock(userID)
	defer unlock()

	statuses, err := l.CurrentStatuses(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := l.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses[job.ID] = status

	entry := model.StatusUpdate{
		JobID:   job.ID,
		Title:   job.Title,
		Company: job.Company,
		Status:  status,
		Date:    l.now().UTC(),
	}
	next := make([]model.StatusUpdate, 0, min(len(history)+1, HistoryLimit))
	next = append(next, entry)
	next = append(next, history...)
	if len(next) > HistoryLimit {
		next = next[:HistoryLimit]
	}

	statusJSON, err := json.Marshal(statuses)
	if err != nil {
		return nil, fmt.Errorf("encode statuses: %w", err)
	}
	historyJSON, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	if err := l.kv.SetMulti(ctx, map[string][]byte{
		store.Key(userID, store.RecordStatuses):      statusJSON,
		store.Key(userID, store.RecordStatusHistory): historyJSON,
	}); err != nil {
		return nil, fmt.Errorf("persist status transition: %w", err)
	}
	return statuses, nil
}

// read decodes a record into dst. A missing or malformed record leaves dst
// at its zero value.
func (l *Ledger) read(ctx context.Context, userID, record string, dst any) error {
	raw, err := l.kv.Get(ctx, store.Key(userID, record))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", record, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		l.logger.Warn("malformed record, treating as empty",
			zap.String("userId", userID), zap.String("record", record), zap.Error(err))
		// Unmarshal may have partially filled dst.
		switch d := dst.(type) {
		case *map[string]string:
			*d = nil
		case *[]model.StatusUpdate:
			*d = nil
		}
	}
	return nil
}
