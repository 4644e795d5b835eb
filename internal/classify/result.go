// Package classify turns free-text chat messages into one of three fixed
// result shapes using an external language model, and defensively parses the
// model's output. The model guarantees nothing about its reply; Interpret
// trusts nothing.
package classify

import (
	"github.com/shopspring/decimal"

	"finbot/internal/core"
)

// Result is one of the three recognized classification shapes: General,
// Financial or Statistics. A Result is produced fresh per inbound message,
// consumed immediately and discarded.
type Result interface {
	classification()
}

// General is a non-financial message with a ready-to-send reply.
type General struct {
	Reply string
}

// Financial is a single transaction extracted from the message. Type is
// canonical (income or expense) even when the model answered in Spanish.
type Financial struct {
	Amount   decimal.Decimal
	Category string
	Type     core.TransactionType
	Date     string
}

// Statistics is a request for an aggregate report. It carries no payload.
type Statistics struct{}

func (General) classification()    {}
func (Financial) classification()  {}
func (Statistics) classification() {}
