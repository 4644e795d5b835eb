// Package backend selects and constructs a ledger store from configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"finbot/internal/ledger"
	"finbot/internal/ledger/google"
	"finbot/internal/ledger/memory"
	"finbot/internal/ledger/webhook"
	"finbot/internal/log"
	"finbot/internal/storage"
)

// Type identifies a ledger backend.
type Type string

const (
	Webhook Type = "webhook"
	Sheets  Type = "sheets"
	SQLite  Type = "sqlite"
	Memory  Type = "memory"
)

// IsValid returns true if the backend type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case Webhook, Sheets, SQLite, Memory:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// Config holds everything any backend might need; each backend reads only
// its own fields.
type Config struct {
	Type Type

	// Webhook
	FetchURL  string
	AppendURL string
	Timeout   time.Duration

	// Google Sheets
	SpreadsheetID      string
	SheetName          string
	ServiceAccountJSON string
	ServiceAccountFile string

	// SQLite
	SQLiteDBPath string

	// Memory
	SeedFile string
}

// Result carries the constructed store and an optional cleanup function.
type Result struct {
	Store   ledger.Store
	Cleanup func() error
}

// Open constructs the configured ledger backend.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid ledger backend: %s", cfg.Type)
	}

	switch cfg.Type {
	case Webhook:
		cli := webhook.New(cfg.FetchURL, cfg.AppendURL, cfg.Timeout)
		logger.Info("initialized webhook ledger", "timeout", cfg.Timeout)
		return &Result{Store: cli}, nil

	case Sheets:
		cli, err := google.New(ctx, google.Config{
			SpreadsheetID:      cfg.SpreadsheetID,
			SheetName:          cfg.SheetName,
			ServiceAccountJSON: cfg.ServiceAccountJSON,
			ServiceAccountFile: cfg.ServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize sheets ledger: %w", err)
		}
		logger.Info("initialized Google Sheets ledger", "spreadsheet_id", cfg.SpreadsheetID)
		return &Result{Store: cli}, nil

	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite ledger: %w", err)
		}
		logger.Info("initialized SQLite ledger", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	default:
		store := memory.NewFromFile(cfg.SeedFile)
		logger.Info("initialized in-memory ledger", "seed_file", cfg.SeedFile)
		return &Result{Store: store}, nil
	}
}
