package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Validate checks cross-field rules and resolves derived fields. Load calls
// it automatically.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store: REDIS_URL is required for the redis backend")
		}
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store: DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("store: unknown backend %q", c.Store.Backend)
	}

	if c.Store.MinConns < 0 || c.Store.MaxConns < 0 {
		return fmt.Errorf("store: connection counts must be >= 0")
	}
	if c.Store.MaxConns > 0 && c.Store.MinConns > c.Store.MaxConns {
		return fmt.Errorf("store: min_conns %d exceeds max_conns %d", c.Store.MinConns, c.Store.MaxConns)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port out of range (got %d)", c.Server.Port)
	}
	if c.Catalog.Size <= 0 {
		return fmt.Errorf("catalog: size must be > 0 (got %d)", c.Catalog.Size)
	}
	if c.Digest.Latency < 0 {
		return fmt.Errorf("digest: latency must be >= 0 (got %s)", c.Digest.Latency)
	}
	if _, err := cron.ParseStandard(c.Digest.Cron); err != nil {
		return fmt.Errorf("digest: cron %q: %w", c.Digest.Cron, err)
	}

	loc, err := time.LoadLocation(c.Digest.Timezone)
	if err != nil {
		return fmt.Errorf("digest: timezone: %w", err)
	}
	c.Digest.Location = loc
	return nil
}
