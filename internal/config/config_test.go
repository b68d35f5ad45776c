package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Routing.MinutesPerStop != 15 {
		t.Errorf("minutes per stop = %v, want 15", cfg.Routing.MinutesPerStop)
	}
	if cfg.ORS.MaxAttempts != 1 {
		t.Errorf("max attempts = %d, want 1", cfg.ORS.MaxAttempts)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
database:
  driver: pgx
  dsn: postgres://localhost/routes
redis:
  enabled: true
  matrix_ttl: 1h
routing:
  start_hour: 7.5
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "pgx" || cfg.Database.DSN != "postgres://localhost/routes" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if !cfg.Redis.Enabled || cfg.Redis.MatrixTTL != time.Hour {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Routing.StartHour != 7.5 {
		t.Errorf("start hour = %v, want 7.5", cfg.Routing.StartHour)
	}
	// untouched keys keep defaults
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ORS_API_KEY", "secret")
	t.Setenv("ORS_MAX_ATTEMPTS", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.ORS.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.ORS.APIKey)
	}
	if cfg.ORS.MaxAttempts != 3 {
		t.Errorf("max attempts = %d, want 3", cfg.ORS.MaxAttempts)
	}
}

func TestEnvInvalidNumber(t *testing.T) {
	t.Setenv("ROUTING_START_HOUR", "eight")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid float")
	}
}
