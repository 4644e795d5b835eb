// Package bot routes incoming chat messages and commands to classification,
// aggregation and rendering. Each message is handled independently; the only
// state a handler touches is the remote ledger, re-fetched on demand.
package bot

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finbot/internal/aggregate"
	"finbot/internal/classify"
	"finbot/internal/core"
	"finbot/internal/ledger"
	"finbot/internal/log"
	"finbot/internal/normalize"
	"finbot/internal/report"
)

const recentLimit = 5

// Dispatcher holds the injected collaborators. The clock is explicit so
// every date-window computation stays reproducible under test.
type Dispatcher struct {
	classifier classify.Classifier
	store      ledger.Store
	logger     *log.Logger
	now        func() time.Time
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the reference time source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func NewDispatcher(classifier classify.Classifier, store ledger.Store, logger *log.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		classifier: classifier,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleCommand routes one slash command. An empty reply means the command is
// not recognized and should be ignored.
func (d *Dispatcher) HandleCommand(ctx context.Context, command string, args []string) string {
	switch command {
	case "start":
		return report.Welcome()
	case "help":
		return report.Help()
	case "expense":
		return d.handleEntryCommand(ctx, core.TypeExpense, args)
	case "income":
		return d.handleEntryCommand(ctx, core.TypeIncome, args)
	case "balance":
		return d.handleBalance(ctx)
	case "report":
		return d.handleReport(ctx)
	default:
		return ""
	}
}

// HandleText routes one plain-text message through the classifier. Every
// failure path ends in a user-visible reply.
func (d *Dispatcher) HandleText(ctx context.Context, text string) string {
	if strings.HasPrefix(text, "/") {
		return ""
	}

	result, err := d.classifier.Classify(ctx, text, d.now())
	if err != nil {
		d.logger.Error("message classification failed", "error", err)
		return report.Fallback
	}

	switch r := result.(type) {
	case classify.General:
		return r.Reply

	case classify.Financial:
		rec := core.RawRecord{
			Amount:   r.Amount,
			Category: r.Category,
			Type:     r.Type.String(),
			Date:     r.Date,
		}
		err := d.store.Append(ctx, rec)
		if err != nil {
			d.logger.Error("ledger forward failed", "error", err,
				"category", r.Category, "type", r.Type)
		}
		return report.FinancialAck(r.Type, r.Amount, r.Category, r.Date, err == nil)

	case classify.Statistics:
		return report.ZeroedStatsReport()

	default:
		return report.Fallback
	}
}

// handleEntryCommand implements the dual meaning of /expense and /income:
// fewer than two arguments shows the weekly/monthly summary for that type;
// two or more records a manual entry.
func (d *Dispatcher) handleEntryCommand(ctx context.Context, typ core.TransactionType, args []string) string {
	ref := d.now()
	if len(args) < 2 {
		txs := normalize.Normalize(d.fetchRecords(ctx))
		return report.TypeSummary(typ, aggregate.Summarize(txs, ref, typ), ref)
	}

	amount, err := decimal.NewFromString(args[0])
	if err != nil || !amount.IsPositive() {
		return report.InvalidAmount
	}
	description := strings.Join(args[1:], " ")

	// The original flow re-reads the ledger here for context without
	// writing the entry; kept as-is.
	recs := d.fetchRecords(ctx)
	d.logger.Debug("ledger snapshot before manual entry", "records", len(recs), "type", typ)

	return report.RecordAck(typ, amount, description)
}

func (d *Dispatcher) handleBalance(ctx context.Context) string {
	ref := d.now()
	txs := normalize.Normalize(d.fetchRecords(ctx))
	return report.BalanceSummary(aggregate.Balance(txs, ref), ref)
}

func (d *Dispatcher) handleReport(ctx context.Context) string {
	txs := normalize.Normalize(d.fetchRecords(ctx))
	return report.FullReport(aggregate.OverallTotals(txs), aggregate.Recent(txs, recentLimit))
}

// fetchRecords reads the full remote record set. A failed fetch is logged
// and degrades to an empty set; it never aborts the message.
func (d *Dispatcher) fetchRecords(ctx context.Context) []core.RawRecord {
	recs, err := d.store.Fetch(ctx)
	if err != nil {
		d.logger.Error("ledger fetch failed", "error", err)
		return nil
	}
	return recs
}
