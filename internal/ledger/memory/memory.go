// Package memory provides an in-process ledger used by tests and as the
// default dev backend. Optionally seeded from a JSON file on disk.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"finbot/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.RawRecord
}

// New returns a store seeded with the given records. Row numbers are assigned
// from the seed order, first record at row 2 to mirror a sheet with a header.
func New(seed []core.RawRecord) *Store {
	s := &Store{}
	for _, r := range seed {
		r.RowNumber = int64(len(s.records)) + 2
		s.records = append(s.records, r)
	}
	return s
}

// NewFromFile seeds the store from a JSON array on disk. A missing or
// unreadable file yields an empty store.
func NewFromFile(path string) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		return New(nil)
	}
	var seed []core.RawRecord
	if err := json.Unmarshal(data, &seed); err != nil {
		return New(nil)
	}
	return New(seed)
}

// Fetch returns a copy of the stored records.
func (s *Store) Fetch(_ context.Context) ([]core.RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.RawRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append stores one record, assigning the next row position.
func (s *Store) Append(_ context.Context, rec core.RawRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.RowNumber = int64(len(s.records)) + 2
	s.records = append(s.records, rec)
	return nil
}
