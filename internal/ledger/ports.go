// Package ledger defines the ports for the external record store. The ledger
// is opaque storage: the bot re-fetches it on demand, writes one row at a
// time, and never caches between messages.
package ledger

import (
	"context"

	"finbot/internal/core"
)

type (
	// Fetcher returns the full remote record set. An empty result is valid
	// and means no data, not an error.
	Fetcher interface {
		Fetch(ctx context.Context) ([]core.RawRecord, error)
	}

	// Appender writes one record. Success or failure is all the remote side
	// reports; there is no identifier and no read-back confirmation.
	Appender interface {
		Append(ctx context.Context, rec core.RawRecord) error
	}

	// Store is a full ledger backend.
	Store interface {
		Fetcher
		Appender
	}
)
