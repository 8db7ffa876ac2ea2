// Package digest builds the once-a-day top matches snapshot.
//
// A digest is keyed by user and local calendar date. Once generated it is a
// frozen record: later preference or catalog changes do not alter it, only
// another generation for the same date overwrites it.
package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/catalog"
	"jobmate/dashboard-service/internal/events"
	"jobmate/dashboard-service/internal/model"
	"jobmate/dashboard-service/internal/store"
)

// State is the lifecycle of one (user, date) digest.
type State string

const (
	StateUnconfigured State = "Unconfigured"
	StateNotGenerated State = "NotGenerated"
	StateGenerating   State = "Generating"
	StateReady        State = "Ready"
)

// DefaultLatency is the simulated batch delay before a digest is ready.
const DefaultLatency = 800 * time.Millisecond

var (
	// ErrUnconfigured is returned when the user has no preferences.
	ErrUnconfigured = errors.New("digest requires saved preferences")
	// ErrGenerationInProgress is returned when a digest for the same user and
	// date is already being generated.
	ErrGenerationInProgress = errors.New("digest generation already in progress")
)

// PreferenceLoader returns a user's preferences or nil when unset.
type PreferenceLoader interface {
	Load(ctx context.Context, userID string) (*model.Preferences, error)
}

// Generator produces and stores digests.
type Generator struct {
	kv        store.KV
	catalog   catalog.Provider
	prefs     PreferenceLoader
	publisher events.Publisher
	logger    *zap.Logger
	latency   time.Duration
	wait      func(time.Duration)

	mu      sync.Mutex
	running map[string]struct{}
}

// Option configures a Generator.
type Option func(*Generator)

// WithLatency sets the simulated generation delay. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(g *Generator) { g.latency = d }
}

// WithPublisher sets where DigestReady events are sent.
func WithPublisher(p events.Publisher) Option {
	return func(g *Generator) { g.publisher = p }
}

// WithWait replaces the function used to wait out the latency.
func WithWait(wait func(time.Duration)) Option {
	return func(g *Generator) { g.wait = wait }
}

func NewGenerator(kv store.KV, cat catalog.Provider, prefs PreferenceLoader, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		kv:        kv,
		catalog:   cat,
		prefs:     prefs,
		publisher: events.Nop{},
		logger:    logger,
		latency:   DefaultLatency,
		wait:      time.Sleep,
		running:   make(map[string]struct{}),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate computes the digest for userID on date and stores it, replacing
// any earlier digest for that date. Once the delay has started the digest
// is always written, even if ctx is cancelled meanwhile.
func (g *Generator) Generate(ctx context.Context, userID, date string) ([]Entry, error) {
	return g.generate(ctx, userID, date, g.latency)
}

// GenerateNow is Generate without the configured delay. Background batches
// use it; it shares the in-flight guard with Generate.
func (g *Generator) GenerateNow(ctx context.Context, userID, date string) ([]Entry, error) {
	return g.generate(ctx, userID, date, 0)
}

func (g *Generator) generate(ctx context.Context, userID, date string, delay time.Duration) ([]Entry, error) {
	prefs, err := g.prefs.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return nil, ErrUnconfigured
	}

	key := store.DigestKey(userID, date)
	if !g.begin(key) {
		return nil, ErrGenerationInProgress
	}
	defer g.end(key)

	if delay > 0 {
		g.wait(delay)
	}
	ctx = context.WithoutCancel(ctx)

	entries := Select(g.catalog.Jobs(), *prefs)
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode digest: %w", err)
	}
	if err := g.kv.Set(ctx, key, raw); err != nil {
		return nil, fmt.Errorf("save digest: %w", err)
	}

	g.logger.Info("digest generated",
		zap.String("userId", userID), zap.String("date", date), zap.Int("entries", len(entries)))
	g.publisher.DigestReady(ctx, events.DigestReady{UserID: userID, Date: date, Count: len(entries)})
	return entries, nil
}

// Snapshot returns the stored digest for date. ok is false when none was
// generated or the record cannot be decoded.
func (g *Generator) Snapshot(ctx context.Context, userID, date string) (entries []Entry, ok bool, err error) {
	raw, err := g.kv.Get(ctx, store.DigestKey(userID, date))
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load digest: %w", err)
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		g.logger.Warn("malformed digest record, treating as not generated",
			zap.String("userId", userID), zap.String("date", date), zap.Error(err))
		return nil, false, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, true, nil
}

// State reports where the (userID, date) digest is in its lifecycle. A
// stored snapshot is Ready even if preferences have since become unreadable.
func (g *Generator) State(ctx context.Context, userID, date string) (State, error) {
	if g.isRunning(store.DigestKey(userID, date)) {
		return StateGenerating, nil
	}
	_, ok, err := g.Snapshot(ctx, userID, date)
	if err != nil {
		return "", err
	}
	if ok {
		return StateReady, nil
	}
	prefs, err := g.prefs.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	if prefs == nil {
		return StateUnconfigured, nil
	}
	return StateNotGenerated, nil
}

func (g *Generator) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.running[key]; busy {
		return false
	}
	g.running[key] = struct{}{}
	return true
}

func (g *Generator) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
}

func (g *Generator) isRunning(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.running[key]
	return busy
}
