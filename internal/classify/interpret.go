package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"finbot/internal/core"
)

type (
	payload struct {
		Category string       `json:"category"`
		Response string       `json:"response"`
		Data     *payloadData `json:"data"`
	}

	payloadData struct {
		Amount    json.Number `json:"amount"`
		Category  string      `json:"category"`
		Type      string      `json:"type"`
		Timestamp string      `json:"timestamp"`
	}
)

// Interpret parses raw classifier output into a Result. Output that is not
// valid JSON or does not satisfy its category's required fields fails with
// core.ErrMalformedClassification. There is no repair and no defaulting: one
// malformed reply is one failed message.
func Interpret(raw string) (Result, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedClassification, err)
	}

	switch p.Category {
	case "general":
		if strings.TrimSpace(p.Response) == "" {
			return nil, fmt.Errorf("%w: general reply without response text", core.ErrMalformedClassification)
		}
		return General{Reply: p.Response}, nil

	case "financial":
		if p.Data == nil {
			return nil, fmt.Errorf("%w: financial reply without data", core.ErrMalformedClassification)
		}
		amount, err := decimal.NewFromString(p.Data.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q is not numeric", core.ErrMalformedClassification, p.Data.Amount)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", core.ErrMalformedClassification)
		}
		if strings.TrimSpace(p.Data.Category) == "" {
			return nil, fmt.Errorf("%w: financial reply without category", core.ErrMalformedClassification)
		}
		typ := core.ParseTransactionType(p.Data.Type)
		if typ == core.TypeUnknown {
			return nil, fmt.Errorf("%w: unrecognized transaction type %q", core.ErrMalformedClassification, p.Data.Type)
		}
		if strings.TrimSpace(p.Data.Timestamp) == "" {
			return nil, fmt.Errorf("%w: financial reply without date", core.ErrMalformedClassification)
		}
		return Financial{
			Amount:   amount,
			Category: p.Data.Category,
			Type:     typ,
			Date:     p.Data.Timestamp,
		}, nil

	case "statistics":
		// The category tag alone is sufficient; any payload is ignored.
		return Statistics{}, nil

	default:
		return nil, fmt.Errorf("%w: unrecognized category %q", core.ErrMalformedClassification, p.Category)
	}
}
