// Package events announces dashboard state changes to other services over
// Redis pub/sub. Delivery is best effort: a failed publish is logged and the
// triggering action still succeeds.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/model"
)

// Channel names.
const (
	ChannelStatusChanged = "EVENT_STATUS_CHANGED"
	ChannelDigestReady   = "EVENT_DIGEST_READY"
)

// StatusChanged is published after a status transition is persisted.
type StatusChanged struct {
	Type    string          `json:"type"`
	UserID  string          `json:"userId"`
	JobID   string          `json:"jobId"`
	Title   string          `json:"title"`
	Company string          `json:"company"`
	Status  model.JobStatus `json:"status"`
	At      time.Time       `json:"at"`
}

// DigestReady is published after a digest snapshot is stored.
type DigestReady struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Count  int    `json:"count"`
}

// Publisher sends events. Implementations never return errors to callers.
type Publisher interface {
	StatusChanged(ctx context.Context, e StatusChanged)
	DigestReady(ctx context.Context, e DigestReady)
}

// Nop drops every event.
type Nop struct{}

func (Nop) StatusChanged(context.Context, StatusChanged) {}
func (Nop) DigestReady(context.Context, DigestReady)     {}

// RedisPublisher publishes JSON events with PUBLISH.
type RedisPublisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisPublisher(rdb *redis.Client, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, logger: logger}
}

func (p *RedisPublisher) StatusChanged(ctx context.Context, e StatusChanged) {
	e.Type = ChannelStatusChanged
	p.publish(ctx, ChannelStatusChanged, e)
}

func (p *RedisPublisher) DigestReady(ctx context.Context, e DigestReady) {
	e.Type = ChannelDigestReady
	p.publish(ctx, ChannelDigestReady, e)
}

func (p *RedisPublisher) publish(ctx context.Context, channel string, payload any) {
	event, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("encode event failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	if err := p.rdb.Publish(ctx, channel, event).Err(); err != nil {
		p.logger.Warn("publish failed", zap.String("channel", channel), zap.Error(err))
	}
}
