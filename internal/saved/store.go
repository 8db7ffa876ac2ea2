// Package saved keeps each user's bookmarked job ids.
package saved

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/store"
)

// Store reads and toggles the saved set. Ids are kept in the order they were
// first saved.
type Store struct {
	kv     store.KV
	logger *zap.Logger
	writes store.KeyedMutex
}

func NewStore(kv store.KV, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// IDs returns the saved ids in insertion order. A missing or malformed
// record reads as an empty set.
func (s *Store) IDs(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.kv.Get(ctx, store.Key(userID, store.RecordSaved))
	if errors.Is(err, store.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load saved jobs: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		s.logger.Warn("malformed saved record, treating as empty",
			zap.String("userId", userID), zap.Error(err))
		return []string{}, nil
	}
	return dedupe(ids), nil
}

// Toggle adds jobID when absent and removes it when present. It reports
// whether the job is saved afterwards along with the new set. Toggles for
// the same user are applied one at a time.
func (s *Store) Toggle(ctx context.Context, userID, jobID string) (bool, []string, error) {
	unlock := s.writes.Lock(userID)
	defer unlock()

	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return false, nil, err
	}

	nowSaved := false
	if i := slices.Index(ids, jobID); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = append(ids, jobID)
		nowSaved = true
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		return false, nil, fmt.Errorf("encode saved jobs: %w", err)
	}
	if err := s.kv.Set(ctx, store.Key(userID, store.RecordSaved), raw); err != nil {
		return false, nil, fmt.Errorf("save saved jobs: %w", err)
	}
	return nowSaved, ids, nil
}

// Contains reports whether id is in ids.
func Contains(ids []string, id string) bool { return slices.Contains(ids, id) }

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
