// Package config loads and validates the service configuration at startup.
// Fail-fast: an invalid setting stops the process before anything connects.
package config

import "time"

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the root configuration of the dashboard service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Catalog CatalogConfig `yaml:"catalog"`
	Digest  DigestConfig  `yaml:"digest"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"             env:"DASHBOARD_PORT"          env-default:"8083"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig selects where user records live. RedisURL also enables event
// publishing regardless of Backend.
type StoreConfig struct {
	Backend        string        `yaml:"backend"         env:"STORE_BACKEND"      env-default:"memory"`
	DatabaseURL    string        `yaml:"database_url"    env:"DATABASE_URL"`
	RedisURL       string        `yaml:"redis_url"       env:"REDIS_URL"`
	MaxConns       int32         `yaml:"max_conns"       env:"DATABASE_MAX_CONNS" env-default:"10"`
	MinConns       int32         `yaml:"min_conns"       env:"DATABASE_MIN_CONNS" env-default:"1"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT"    env-default:"5s"`
}

// CatalogConfig sizes the synthetic job catalog. Seed 0 picks a random seed.
type CatalogConfig struct {
	Size int   `yaml:"size" env:"CATALOG_SIZE" env-default:"60"`
	Seed int64 `yaml:"seed" env:"CATALOG_SEED" env-default:"0"`
}

// DigestConfig controls digest generation and the daily batch.
type DigestConfig struct {
	Latency  time.Duration `yaml:"latency"  env:"DIGEST_LATENCY" env-default:"800ms"`
	Cron     string        `yaml:"cron"     env:"DIGEST_CRON"    env-default:"0 9 * * *"`
	Timezone string        `yaml:"timezone" env:"TIMEZONE"       env-default:"Local"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
