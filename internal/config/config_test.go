package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"MENUSCORE_PORT", "MENUSCORE_METRICS_PORT", "MENUSCORE_ADMIN_TOKEN", "MENUSCORE_CORS_ORIGINS",
	"MENUSCORE_DATABASE_DRIVER", "MENUSCORE_DATABASE_URL", "MENUSCORE_NATS_URL",
	"MENUSCORE_DATASET_PATH", "MENUSCORE_WORKERS", "MENUSCORE_LOG_LEVEL", "MENUSCORE_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimitPerMinute)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Hermes.URL != "nats://localhost:4222" {
		t.Errorf("expected nats URL, got %s", cfg.Hermes.URL)
	}
	if cfg.Dataset.Path != "data/fastfood.csv" {
		t.Errorf("expected dataset path, got %s", cfg.Dataset.Path)
	}
	if cfg.Scoring.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Scoring.Workers)
	}
	if cfg.StoreEnabled() {
		t.Error("expected store disabled without a database URL")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MENUSCORE_PORT", "9000")
	t.Setenv("MENUSCORE_METRICS_PORT", "9001")
	t.Setenv("MENUSCORE_ADMIN_TOKEN", "secret-token")
	t.Setenv("MENUSCORE_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("MENUSCORE_DATABASE_URL", "postgres://localhost/menuscore_test")
	t.Setenv("MENUSCORE_NATS_URL", "nats://nats:4222")
	t.Setenv("MENUSCORE_DATASET_PATH", "/srv/menu.csv")
	t.Setenv("MENUSCORE_WORKERS", "8")
	t.Setenv("MENUSCORE_LOG_LEVEL", "debug")
	t.Setenv("MENUSCORE_LOG_FORMAT", "text")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token 'secret-token', got '%s'", cfg.Server.AdminToken)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Database.URL != "postgres://localhost/menuscore_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if !cfg.StoreEnabled() {
		t.Error("expected store enabled with a database URL")
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected nats URL, got '%s'", cfg.Hermes.URL)
	}
	if cfg.Dataset.Path != "/srv/menu.csv" {
		t.Errorf("expected dataset path, got '%s'", cfg.Dataset.Path)
	}
	if cfg.Scoring.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Scoring.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected log format 'text', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "menuscore.yaml")
	yml := `
server:
  port: 7000
database:
  driver: sqlite
  url: file:test.db
scoring:
  workers: 2
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Database.Driver != "sqlite" || !cfg.StoreEnabled() {
		t.Errorf("expected sqlite store enabled, got %+v", cfg.Database)
	}
	if cfg.Scoring.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Scoring.Workers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
