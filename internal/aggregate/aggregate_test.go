package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finbot/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(amount string, typ core.TransactionType, category string, date time.Time, order int64) core.Transaction {
	return core.Transaction{
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Category:    category,
		Date:        date,
		HasDate:     true,
		SourceOrder: order,
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "sunday week started six days earlier",
			ref:       day(2024, time.January, 21), // Sunday
			wantStart: day(2024, time.January, 15),
			wantEnd:   day(2024, time.January, 21),
		},
		{
			name:      "wednesday week started the prior monday",
			ref:       day(2024, time.January, 17), // Wednesday
			wantStart: day(2024, time.January, 15),
			wantEnd:   day(2024, time.January, 21),
		},
		{
			name:      "monday is its own week start",
			ref:       day(2024, time.January, 15),
			wantStart: day(2024, time.January, 15),
			wantEnd:   day(2024, time.January, 21),
		},
		{
			name:      "week spanning a month boundary",
			ref:       day(2024, time.February, 1), // Thursday
			wantStart: day(2024, time.January, 29),
			wantEnd:   day(2024, time.February, 4),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekRange(tt.ref)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("WeekRange(%v) = (%v, %v), want (%v, %v)",
					tt.ref, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestSummarizeWeekAndMonth(t *testing.T) {
	ref := day(2024, time.January, 17) // Wednesday
	txs := []core.Transaction{
		tx("50", core.TypeExpense, "Comida", day(2024, time.January, 15), 2),
		tx("100", core.TypeIncome, "Salario", day(2024, time.January, 16), 3),
		tx("30", core.TypeExpense, "Transporte", day(2024, time.January, 2), 1), // same month, prior week
		tx("99", core.TypeExpense, "Comida", day(2023, time.December, 31), 4),   // out of both windows
	}

	s := Summarize(txs, ref, core.TypeExpense)
	if got := s.WeeklyTotal.String(); got != "50" {
		t.Errorf("weekly expense total = %s, want 50", got)
	}
	if got := s.MonthlyTotal.String(); got != "80" {
		t.Errorf("monthly expense total = %s, want 80", got)
	}
	if len(s.WeeklyItems) != 1 || s.WeeklyItems[0].Category != "Comida" {
		t.Errorf("unexpected weekly items: %+v", s.WeeklyItems)
	}

	s = Summarize(txs, ref, core.TypeIncome)
	if got := s.WeeklyTotal.String(); got != "100" {
		t.Errorf("weekly income total = %s, want 100", got)
	}
}

func TestSummarizeUnfilteredIncludesUnknownTypes(t *testing.T) {
	ref := day(2024, time.January, 17)
	txs := []core.Transaction{
		tx("10", core.TypeExpense, "A", day(2024, time.January, 16), 1),
		tx("5", core.TypeUnknown, "B", day(2024, time.January, 16), 2),
	}
	s := Summarize(txs, ref, "")
	if got := s.WeeklyTotal.String(); got != "15" {
		t.Errorf("unfiltered weekly total = %s, want 15", got)
	}
}

func TestSummarizeExcludesUndatedRecords(t *testing.T) {
	ref := day(2024, time.January, 17)
	txs := []core.Transaction{
		{Amount: decimal.RequireFromString("40"), Type: core.TypeExpense, Category: "Comida"},
		tx("50", core.TypeExpense, "Comida", day(2024, time.January, 15), 1),
	}
	s := Summarize(txs, ref, core.TypeExpense)
	if got := s.WeeklyTotal.String(); got != "50" {
		t.Errorf("weekly total = %s, want 50 (undated record must be excluded)", got)
	}
	if got := s.MonthlyTotal.String(); got != "50" {
		t.Errorf("monthly total = %s, want 50 (undated record must be excluded)", got)
	}
}

func TestSummarizeSortsWeeklyItemsByDate(t *testing.T) {
	ref := day(2024, time.January, 17)
	txs := []core.Transaction{
		tx("1", core.TypeExpense, "later", day(2024, time.January, 19), 1),
		tx("2", core.TypeExpense, "earlier", day(2024, time.January, 15), 2),
	}
	s := Summarize(txs, ref, core.TypeExpense)
	if len(s.WeeklyItems) != 2 || s.WeeklyItems[0].Category != "earlier" {
		t.Errorf("weekly items not sorted ascending by date: %+v", s.WeeklyItems)
	}
}

func TestBalanceIdentity(t *testing.T) {
	ref := day(2024, time.January, 17)
	txs := []core.Transaction{
		tx("50", core.TypeExpense, "Comida", day(2024, time.January, 15), 1),
		tx("100", core.TypeIncome, "", day(2024, time.January, 16), 2),
		tx("20", core.TypeIncome, "Extra", day(2024, time.January, 3), 3),
	}
	b := Balance(txs, ref)

	if got := b.Week.Income.String(); got != "100" {
		t.Errorf("weekly income = %s, want 100", got)
	}
	if got := b.Week.Expense.String(); got != "50" {
		t.Errorf("weekly expense = %s, want 50", got)
	}
	if got := b.Week.Balance.String(); got != "50" {
		t.Errorf("weekly balance = %s, want 50", got)
	}
	if !b.Week.Balance.Equal(b.Week.Income.Sub(b.Week.Expense)) {
		t.Error("weekly balance must equal income minus expense")
	}
	if !b.Month.Balance.Equal(b.Month.Income.Sub(b.Month.Expense)) {
		t.Error("monthly balance must equal income minus expense")
	}
	if got := b.Month.Income.String(); got != "120" {
		t.Errorf("monthly income = %s, want 120", got)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	ref := day(2024, time.January, 17)
	txs := []core.Transaction{
		tx("50", core.TypeExpense, "Comida", day(2024, time.January, 15), 1),
		tx("100", core.TypeIncome, "Salario", day(2024, time.January, 16), 2),
	}
	first := Summarize(txs, ref, "")
	second := Summarize(txs, ref, "")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output:\n%+v\n%+v", first, second)
	}
}

func TestOverallTotals(t *testing.T) {
	txs := []core.Transaction{
		tx("100", core.TypeIncome, "", day(2024, time.January, 1), 1),
		tx("30", core.TypeExpense, "", day(2024, time.January, 2), 2),
		{Amount: decimal.RequireFromString("7"), Type: core.TypeExpense}, // undated still counts
		{Amount: decimal.RequireFromString("9"), Type: core.TypeUnknown}, // unknown counts nowhere
	}
	got := OverallTotals(txs)
	if got.Income.String() != "100" || got.Expense.String() != "37" || got.Balance.String() != "63" {
		t.Errorf("totals = %+v, want income 100 expense 37 balance 63", got)
	}
}

func TestRecent(t *testing.T) {
	txs := []core.Transaction{
		tx("1", core.TypeIncome, "a", day(2024, time.January, 1), 5),
		tx("2", core.TypeIncome, "b", day(2024, time.January, 1), 2),
		tx("3", core.TypeIncome, "c", day(2024, time.January, 1), 9),
		{Amount: decimal.Zero, Type: core.TypeUnknown, Category: "d"}, // no source order -> 0
	}
	got := Recent(txs, 2)
	if len(got) != 2 || got[0].Category != "c" || got[1].Category != "a" {
		t.Errorf("Recent(2) = %+v, want [c a]", got)
	}

	got = Recent(txs, 10)
	if len(got) != 4 || got[3].Category != "d" {
		t.Errorf("Recent(10) should return all records oldest-last, got %+v", got)
	}
}
