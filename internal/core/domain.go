package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeUnknown TransactionType = "unknown"
)

type (
	TransactionType string

	// RawRecord is one row of the remote ledger, untrusted as-is. The JSON
	// keys match the spreadsheet headers verbatim, including the trailing
	// spaces in CATEGORÍA and FECHA. Amount is loosely typed because the
	// sheet returns either a number or a string depending on cell formatting.
	RawRecord struct {
		Amount    any    `json:"MONTO"`
		Category  string `json:"CATEGORÍA "`
		Type      string `json:"TIPO DE TRANSACCIÓN"`
		Date      string `json:"FECHA "`
		RowNumber int64  `json:"row_number,omitempty"`
	}

	// Transaction is the canonical internal shape a RawRecord normalizes to.
	// HasDate reports whether Date carries a valid calendar day; records
	// without one are excluded from window aggregation. SourceOrder is the
	// sheet row position, used only as a recency hint.
	Transaction struct {
		Amount      decimal.Decimal
		Type        TransactionType
		Category    string
		Date        time.Time
		HasDate     bool
		SourceOrder int64
	}
)

// ParseTransactionType maps a raw type token to its canonical value.
// English and Spanish tokens are both accepted; anything else is unknown.
func ParseTransactionType(s string) TransactionType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "ingresos":
		return TypeIncome
	case "expense", "gastos":
		return TypeExpense
	default:
		return TypeUnknown
	}
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}
