package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8083 {
		t.Errorf("port = %d, want 8083", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Store.MaxConns != 10 || cfg.Store.MinConns != 1 || cfg.Store.ConnectTimeout != 5*time.Second {
		t.Errorf("pool defaults = %+v", cfg.Store)
	}
	if cfg.Catalog.Size != 60 {
		t.Errorf("catalog size = %d, want 60", cfg.Catalog.Size)
	}
	if cfg.Digest.Latency != 800*time.Millisecond {
		t.Errorf("digest latency = %s, want 800ms", cfg.Digest.Latency)
	}
	if cfg.Digest.Cron != "0 9 * * *" {
		t.Errorf("digest cron = %q", cfg.Digest.Cron)
	}
	if cfg.Digest.Location == nil {
		t.Error("digest location not resolved")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DASHBOARD_PORT", "9000")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CATALOG_SIZE", "12")
	t.Setenv("CATALOG_SEED", "99")
	t.Setenv("DIGEST_LATENCY", "0s")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Store.Backend != BackendRedis || cfg.Catalog.Size != 12 || cfg.Catalog.Seed != 99 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Digest.Latency != 0 {
		t.Errorf("latency = %s, want 0", cfg.Digest.Latency)
	}
	if cfg.Digest.Location != time.UTC {
		t.Errorf("location = %v, want UTC", cfg.Digest.Location)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, `
server:
  port: 9191
store:
  backend: postgres
  database_url: "postgres://u:p@localhost:5432/dashboard"
catalog:
  size: 25
  seed: 7
digest:
  cron: "30 8 * * 1-5"
  timezone: "UTC"
log:
  level: debug
  format: text
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendPostgres || cfg.Store.DatabaseURL == "" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Catalog.Size != 25 || cfg.Catalog.Seed != 7 {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Digest.Cron != "30 8 * * 1-5" {
		t.Errorf("cron = %q", cfg.Digest.Cron)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Digest.Latency != 800*time.Millisecond {
		t.Errorf("latency = %s, want default", cfg.Digest.Latency)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 8083},
		Store:   StoreConfig{Backend: BackendMemory},
		Catalog: CatalogConfig{Size: 60},
		Digest:  DigestConfig{Latency: 800 * time.Millisecond, Cron: "0 9 * * *", Timezone: "UTC"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "unknown backend"},
		{"redis without url", func(c *Config) { c.Store.Backend = BackendRedis }, "REDIS_URL"},
		{"postgres without url", func(c *Config) { c.Store.Backend = BackendPostgres }, "DATABASE_URL"},
		{"postgres with url", func(c *Config) {
			c.Store.Backend = BackendPostgres
			c.Store.DatabaseURL = "postgres://localhost/db"
		}, ""},
		{"min above max conns", func(c *Config) {
			c.Store.MaxConns = 2
			c.Store.MinConns = 5
		}, "exceeds"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "port"},
		{"empty catalog", func(c *Config) { c.Catalog.Size = 0 }, "catalog"},
		{"negative latency", func(c *Config) { c.Digest.Latency = -time.Second }, "latency"},
		{"bad cron", func(c *Config) { c.Digest.Cron = "every morning" }, "cron"},
		{"bad timezone", func(c *Config) { c.Digest.Timezone = "Mars/Olympus_Mons" }, "timezone"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
