// Package aggregate computes date-windowed sums over normalized transactions.
//
// Every function takes the reference time as an explicit argument, so the
// package is a pure function of its inputs: identical transactions and the
// same reference time always produce identical output.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finbot/internal/core"
)

type (
	// Summary holds the weekly and monthly sums for one window computation.
	// WeeklyItems is sorted ascending by date for display.
	Summary struct {
		WeekStart    time.Time
		WeekEnd      time.Time
		WeeklyTotal  decimal.Decimal
		WeeklyItems  []core.Transaction
		MonthlyTotal decimal.Decimal
	}

	// WindowTotals breaks one window down by transaction type.
	// Balance is always Income minus Expense.
	WindowTotals struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
		Balance decimal.Decimal
	}

	// BalanceSummary holds per-type totals for the weekly and monthly
	// windows containing the reference date. The two windows overlap and
	// are computed independently.
	BalanceSummary struct {
		WeekStart time.Time
		WeekEnd   time.Time
		Week      WindowTotals
		Month     WindowTotals
	}

	// Totals are all-time sums over every record, dated or not.
	Totals struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
		Balance decimal.Decimal
	}
)

// WeekRange returns the Monday-through-Sunday window containing ref,
// at day granularity in ref's location.
func WeekRange(ref time.Time) (start, end time.Time) {
	day := truncateToDay(ref)
	offset := 1 - int(day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}
	start = day.AddDate(0, 0, offset)
	return start, start.AddDate(0, 0, 6)
}

// Summarize computes the weekly and monthly sums for the windows containing
// ref. When filter is non-empty only transactions of that type participate;
// otherwise every dated transaction does, unknown types included. Records
// without a valid date never enter either window.
func Summarize(txs []core.Transaction, ref time.Time, filter core.TransactionType) Summary {
	weekStart, weekEnd := WeekRange(ref)
	refYear, refMonth, _ := ref.Date()

	s := Summary{
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		WeeklyTotal:  decimal.Zero,
		MonthlyTotal: decimal.Zero,
	}
	for _, t := range txs {
		if !t.HasDate {
			continue
		}
		if filter != "" && t.Type != filter {
			continue
		}
		if withinDays(t.Date, weekStart, weekEnd) {
			s.WeeklyItems = append(s.WeeklyItems, t)
			s.WeeklyTotal = s.WeeklyTotal.Add(t.Amount)
		}
		y, m, _ := t.Date.Date()
		if y == refYear && m == refMonth {
			s.MonthlyTotal = s.MonthlyTotal.Add(t.Amount)
		}
	}
	sort.SliceStable(s.WeeklyItems, func(i, j int) bool {
		return s.WeeklyItems[i].Date.Before(s.WeeklyItems[j].Date)
	})
	return s
}

// Balance computes income, expense and balance for the weekly and monthly
// windows containing ref.
func Balance(txs []core.Transaction, ref time.Time) BalanceSummary {
	income := Summarize(txs, ref, core.TypeIncome)
	expense := Summarize(txs, ref, core.TypeExpense)

	return BalanceSummary{
		WeekStart: income.WeekStart,
		WeekEnd:   income.WeekEnd,
		Week: WindowTotals{
			Income:  income.WeeklyTotal,
			Expense: expense.WeeklyTotal,
			Balance: income.WeeklyTotal.Sub(expense.WeeklyTotal),
		},
		Month: WindowTotals{
			Income:  income.MonthlyTotal,
			Expense: expense.MonthlyTotal,
			Balance: income.MonthlyTotal.Sub(expense.MonthlyTotal),
		},
	}
}

// OverallTotals sums income and expense over the full record set. Unlike the
// window computations it does not require a valid date; unknown types count
// toward neither sum.
func OverallTotals(txs []core.Transaction) Totals {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case core.TypeIncome:
			income = income.Add(t.Amount)
		case core.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return Totals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// Recent returns the n most recent transactions, most recent first, using
// the sheet row position as the recency indicator. Records without one sort
// as position zero.
func Recent(txs []core.Transaction, n int) []core.Transaction {
	sorted := make([]core.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SourceOrder < sorted[j].SourceOrder
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	recent := sorted[len(sorted)-n:]
	out := make([]core.Transaction, 0, n)
	for i := len(recent) - 1; i >= 0; i-- {
		out = append(out, recent[i])
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// withinDays reports whether t falls inside [start, end] comparing calendar
// days only; time of day and location are ignored.
func withinDays(t, start, end time.Time) bool {
	day := dayOrdinal(t)
	return day >= dayOrdinal(start) && day <= dayOrdinal(end)
}

// dayOrdinal collapses a time to a comparable calendar-day number.
func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
