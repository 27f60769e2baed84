package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "data/smartworth.db" {
		t.Errorf("unexpected database defaults %+v", cfg.Database)
	}
	if cfg.Analysis.USDRate != 34 || cfg.Analysis.SimilarLimit != 5 {
		t.Errorf("unexpected analysis defaults %+v", cfg.Analysis)
	}
	if cfg.Sources.Timeout != 45*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Sources.Timeout)
	}
	if !cfg.Sources.Google.IsEnabled() || !cfg.Sources.Trendyol.IsEnabled() {
		t.Error("sources should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
sources:
  google:
    enabled: false
  trendyol:
    base_url: http://localhost:9999
    max_results: 7
  timeout: 10s
analysis:
  usd_rate: 30
database:
  driver: postgres
  postgres_dsn: postgres://from-file
watchlist:
  products: ["iphone 13", "kindle"]
server:
  enabled: true
  allowed_origins: ["http://localhost:3000"]
`)
	t.Setenv("DATABASE_URL", "postgres://from-env")
	t.Setenv("USD_RATE", "33.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Sources.Google.IsEnabled() {
		t.Error("google should be disabled")
	}
	if cfg.Sources.Trendyol.BaseURL != "http://localhost:9999" || cfg.Sources.Trendyol.MaxResults != 7 {
		t.Errorf("unexpected trendyol config %+v", cfg.Sources.Trendyol)
	}
	if cfg.Sources.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Sources.Timeout)
	}
	if cfg.Analysis.USDRate != 33.5 {
		t.Errorf("expected env rate override, got %v", cfg.Analysis.USDRate)
	}
	if cfg.Database.PostgresDSN != "postgres://from-env" {
		t.Errorf("expected env DSN override, got %q", cfg.Database.PostgresDSN)
	}
	if len(cfg.Watchlist.Products) != 2 {
		t.Errorf("unexpected watchlist %v", cfg.Watchlist.Products)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "sources: [unclosed")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		return cfg
	}
	disabled := false

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres"; c.Database.PostgresDSN = "" }},
		{"telegram without token", func(c *Config) { c.Telegram.Enabled = true; c.Telegram.BotToken = "" }},
		{"telegram without chat", func(c *Config) { c.Telegram.Enabled = true; c.Telegram.BotToken = "t"; c.Telegram.ChatID = "" }},
		{"non-positive rate", func(c *Config) { c.Analysis.USDRate = -1 }},
		{"no sources", func(c *Config) {
			c.Sources.Google.Enabled = &disabled
			c.Sources.Trendyol.Enabled = &disabled
		}},
		{"server without rate limit", func(c *Config) { c.Server.Enabled = true; c.Server.RateLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
