package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.App.Name != "dddkit" {
		t.Errorf("expected app name dddkit, got %q", cfg.App.Name)
	}
	if !cfg.IsDevelopment() {
		t.Error("default environment should be development")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}

	if !cfg.Database.Retry.Enabled {
		t.Error("retry should be enabled by default")
	}
	if cfg.Database.Retry.MaxAttempts != 3 {
		t.Errorf("expected 3 retry attempts, got %d", cfg.Database.Retry.MaxAttempts)
	}
	if cfg.Database.Retry.InitialDelay != 100*time.Millisecond {
		t.Errorf("expected 100ms initial delay, got %v", cfg.Database.Retry.InitialDelay)
	}
	if cfg.Database.Retry.BackoffFactor != 2.0 {
		t.Errorf("expected backoff factor 2.0, got %v", cfg.Database.Retry.BackoffFactor)
	}

	if !cfg.Worker.Enabled {
		t.Error("worker should be enabled by default")
	}
	if cfg.Worker.PollInterval != 5*time.Second {
		t.Errorf("expected 5s poll interval, got %v", cfg.Worker.PollInterval)
	}
	if cfg.Worker.BatchSize != 50 {
		t.Errorf("expected batch size 50, got %d", cfg.Worker.BatchSize)
	}
	if cfg.Worker.MaxRetries != 5 {
		t.Errorf("expected 5 worker retries, got %d", cfg.Worker.MaxRetries)
	}
	if cfg.Worker.PublishRate != 100 {
		t.Errorf("expected publish rate 100, got %v", cfg.Worker.PublishRate)
	}
	if cfg.Worker.PublishBurst != 200 {
		t.Errorf("expected publish burst 200, got %d", cfg.Worker.PublishBurst)
	}

	t.Log("✓ Default configuration tests passed")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  name: custom-app
  env: production
server:
  port: "9090"
worker:
  enabled: false
  batch_size: 10
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config file failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "custom-app" {
		t.Errorf("expected custom-app, got %q", cfg.App.Name)
	}
	if !cfg.IsProduction() {
		t.Error("env should be production")
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Worker.Enabled {
		t.Error("worker should be disabled by the file")
	}
	if cfg.Worker.BatchSize != 10 {
		t.Errorf("expected batch size 10, got %d", cfg.Worker.BatchSize)
	}

	// Values not present in the file keep their defaults
	if cfg.Worker.PollInterval != 5*time.Second {
		t.Errorf("expected default poll interval, got %v", cfg.Worker.PollInterval)
	}

	t.Log("✓ File configuration tests passed")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("explicit missing config file should fail")
	}

	t.Log("✓ Missing file tests passed")
}
