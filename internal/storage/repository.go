// Package storage provides a SQLite-backed ledger for offline and dev use.
// It stores the same four loosely-typed columns the remote sheet does, so
// the normalizer treats both sources identically.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"finbot/internal/core"
	"finbot/internal/ledger"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Fetch implements ledger.Fetcher. The row id doubles as the recency hint.
func (r *SQLiteRepository) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, type, date FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var records []core.RawRecord
	for rows.Next() {
		var (
			id                           int64
			amount, category, typ, date string
		)
		if err := rows.Scan(&id, &amount, &category, &typ, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		records = append(records, core.RawRecord{
			Amount:    amount,
			Category:  category,
			Type:      typ,
			Date:      date,
			RowNumber: id,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return records, nil
}

// Append implements ledger.Appender.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.RawRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (amount, category, type, date) VALUES (?, ?, ?, ?)`,
		fmt.Sprint(rec.Amount), rec.Category, rec.Type, rec.Date)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
