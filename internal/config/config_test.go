package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		BotToken:         "123:abc",
		OpenAIAPIKey:     "sk-test",
		LedgerBackend:    "webhook",
		WebhookFetchURL:  "https://hooks.example.com/fetch",
		WebhookAppendURL: "https://hooks.example.com/append",
		HTTPTimeout:      15 * time.Second,
		SQLiteDBPath:     "./data/finbot.db",
		Port:             "8081",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()
	if cfg.LedgerBackend != "webhook" {
		t.Errorf("default ledger backend = %q, want webhook", cfg.LedgerBackend)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("default HTTP timeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.Port != "8081" {
		t.Errorf("default port = %q, want 8081", cfg.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "memory")
	t.Setenv("HTTP_TIMEOUT", "30s")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

	cfg := Load()
	if cfg.LedgerBackend != "memory" {
		t.Errorf("ledger backend = %q, want memory", cfg.LedgerBackend)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTP timeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.OpenAIModel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid webhook config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid memory config",
			mutate: func(c *Config) {
				c.LedgerBackend = "memory"
				c.WebhookFetchURL = ""
				c.WebhookAppendURL = ""
			},
		},
		{
			name:    "missing bot token",
			mutate:  func(c *Config) { c.BotToken = "" },
			wantErr: "TELEGRAM_BOT_TOKEN is required",
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.OpenAIAPIKey = "" },
			wantErr: "OPENAI_API_KEY is required",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.LedgerBackend = "redis" },
			wantErr: "invalid ledger backend 'redis'",
		},
		{
			name:    "webhook backend without fetch url",
			mutate:  func(c *Config) { c.WebhookFetchURL = "" },
			wantErr: "WEBHOOK_FETCH_URL is required",
		},
		{
			name:    "webhook url with bad scheme",
			mutate:  func(c *Config) { c.WebhookAppendURL = "ftp://hooks.example.com" },
			wantErr: "invalid WEBHOOK_APPEND_URL scheme",
		},
		{
			name: "sheets backend without spreadsheet id",
			mutate: func(c *Config) {
				c.LedgerBackend = "sheets"
				c.GoogleServiceAccountJSON = "{}"
			},
			wantErr: "Google Spreadsheet ID is required",
		},
		{
			name: "sheets backend without credentials",
			mutate: func(c *Config) {
				c.LedgerBackend = "sheets"
				c.GoogleSpreadsheetID = "sheet-id"
			},
			wantErr: "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON",
		},
		{
			name:    "non-numeric port",
			mutate:  func(c *Config) { c.Port = "http" },
			wantErr: "invalid port 'http'",
		},
		{
			name:    "timeout too small",
			mutate:  func(c *Config) { c.HTTPTimeout = 100 * time.Millisecond },
			wantErr: "must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
