package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Fatalf("expected addr %q, got %q", DefaultAddr, cfg.Addr)
	}
	if cfg.Weather.HTTPTimeout != DefaultWeatherHTTPTimeout {
		t.Fatalf("expected weather timeout %s, got %s", DefaultWeatherHTTPTimeout, cfg.Weather.HTTPTimeout)
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
addr: ":9090"
shutdown_timeout: 2s
weather:
  db_path: /tmp/file.db
  http_timeout: 3s
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("WEATHER_DB_PATH", "/tmp/env.db")
	t.Setenv("OTEL_LOGS_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr from file, got %q", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("expected shutdown timeout 2s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.Weather.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env to override db path, got %q", cfg.Weather.DBPath)
	}
	if cfg.Weather.HTTPTimeout != 3*time.Second {
		t.Fatalf("expected weather timeout 3s, got %s", cfg.Weather.HTTPTimeout)
	}
	if cfg.Weather.AreaURL != DefaultWeatherAreaURL {
		t.Fatalf("expected default area url to survive, got %q", cfg.Weather.AreaURL)
	}
	if !cfg.OTelLogs {
		t.Fatal("expected OTEL_LOGS_ENABLED to enable log export")
	}
}

func TestMergeEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{name: "bool", env: map[string]string{"OTEL_LOGS_ENABLED": "maybe"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			lookup := func(k string) (string, bool) {
				v, ok := tc.env[k]
				return v, ok
			}
			if err := cfg.mergeEnv(lookup); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
