// Package preferences persists each user's matching criteria.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/store"
)

// Store loads and replaces a user's Preferences record.
type Store struct {
	kv     store.KV
	logger *zap.Logger
}

func NewStore(kv store.KV, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Load returns the user's preferences, or nil when none were saved.
// A record that cannot be decoded is treated as absent.
func (s *Store) Load(ctx context.Context, userID string) (*model.Preferences, error) {
	raw, err := s.kv.Get(ctx, store.Key(userID, store.RecordPreferences))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	var p model.Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("malformed preferences record, treating as absent",
			zap.String("userId", userID), zap.Error(err))
		return nil, nil
	}
	return &p, nil
}

// Save replaces the whole record. Fields are not merged with the previous
// value; callers that change one field must load, modify and save.
func (s *Store) Save(ctx context.Context, userID string, p model.Preferences) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.kv.Set(ctx, store.Key(userID, store.RecordPreferences), raw); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
