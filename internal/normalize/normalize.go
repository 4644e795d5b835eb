// Package normalize converts raw ledger rows into canonical transactions.
//
// Rows come from an untrusted spreadsheet: amounts arrive as strings or
// numbers, type labels in English or Spanish with arbitrary casing, and dates
// are trusted only when they are a strict YYYY-MM-DD. A malformed row never
// aborts the batch; bad fields degrade per field.
package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finbot/internal/core"
)

// Normalize converts every raw row into a Transaction. It is a pure function:
// no row is ever rejected outright, but a row whose date fails to parse has
// HasDate unset and is skipped by window aggregation.
func Normalize(raw []core.RawRecord) []core.Transaction {
	out := make([]core.Transaction, 0, len(raw))
	for _, r := range raw {
		t := core.Transaction{
			Amount:      parseAmount(r.Amount),
			Type:        core.ParseTransactionType(r.Type),
			Category:    r.Category,
			SourceOrder: r.RowNumber,
		}
		if d, ok := ParseDay(r.Date); ok {
			t.Date = d
			t.HasDate = true
		}
		out = append(out, t)
	}
	return out
}

// ParseDay parses a strict YYYY-MM-DD calendar day. All three components must
// be numeric and non-zero; anything else reports no date.
func ParseDay(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || y == 0 {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m == 0 {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || d == 0 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

// parseAmount coerces the loosely typed amount cell into a non-negative
// decimal. Absent, unparseable or negative values normalize to zero.
func parseAmount(v any) decimal.Decimal {
	var d decimal.Decimal
	switch a := v.(type) {
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(a))
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	case json.Number:
		parsed, err := decimal.NewFromString(a.String())
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(a)
	case int:
		d = decimal.NewFromInt(int64(a))
	case int64:
		d = decimal.NewFromInt(a)
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
