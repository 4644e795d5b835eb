// Package google implements the ledger ports directly against the Google
// Sheets API, for deployments that skip the webhook automation and read the
// spreadsheet itself. The sheet layout is the four ledger columns in A:D with
// a header row.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finbot/internal/core"
	"finbot/internal/ledger"
)

type Config struct {
	SpreadsheetID string
	SheetName     string
	// One of the two credential sources must be set.
	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Store = (*Client)(nil)

// New creates a Sheets-backed ledger using service account credentials.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Transacciones"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.ServiceAccountJSON) != "":
		credentialsJSON = []byte(cfg.ServiceAccountJSON)
	case strings.TrimSpace(cfg.ServiceAccountFile) != "":
		data, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Fetch reads the ledger columns below the header and maps each row to a
// RawRecord. The sheet row index becomes the record's recency hint. Short or
// blank rows are carried through as-is; the normalizer deals with them.
func (c *Client) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A2:D", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrRemoteUnavailable, rng, err)
	}

	records := make([]core.RawRecord, 0, len(resp.Values))
	for i, row := range resp.Values {
		rec := core.RawRecord{RowNumber: int64(i) + 2}
		if len(row) > 0 {
			rec.Amount = row[0]
		}
		if len(row) > 1 {
			rec.Category = fmt.Sprint(row[1])
		}
		if len(row) > 2 {
			rec.Type = fmt.Sprint(row[2])
		}
		if len(row) > 3 {
			rec.Date = fmt.Sprint(row[3])
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append adds one record at the bottom of the ledger range.
func (c *Client) Append(ctx context.Context, rec core.RawRecord) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:D", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{{rec.Amount, rec.Category, rec.Type, rec.Date}}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", core.ErrRemoteUnavailable, rng, err)
	}
	return nil
}
