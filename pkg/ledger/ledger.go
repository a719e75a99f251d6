// Package ledger derives dashboard views from income and expense records.
// Every function is a pure reduction over its inputs: no storage access, no
// clock reads, safe for concurrent use.
package ledger

import (
	"sort"
	"time"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Entry is a kind-tagged view of a single record. Amounts are in cents.
type Entry struct {
	ID          uint      `json:"id"`
	Kind        Kind      `json:"type"`
	Title       string    `json:"title"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}

// Summary holds the dashboard totals. Balance = TotalIncome - TotalExpense.
type Summary struct {
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpense"`
	Balance      int64 `json:"balance"`
}

type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// DailyAmount is one calendar-date bucket of a windowed series.
// Date is the record's UTC calendar date formatted as YYYY-MM-DD.
type DailyAmount struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// Summarize totals both record sets. Sums over empty sets are 0.
func Summarize(incomes, expenses []Entry) Summary {
	var s Summary
	for _, e := range incomes {
		s.TotalIncome += e.Amount
	}
	for _, e := range expenses {
		s.TotalExpense += e.Amount
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// Recent merges both record sets, newest first, truncated to limit.
// The sort is stable: entries sharing a date keep their input order, incomes
// before expenses.
func Recent(incomes, expenses []Entry, limit int) []Entry {
	merged := make([]Entry, 0, len(incomes)+len(expenses))
	merged = append(merged, incomes...)
	merged = append(merged, expenses...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})
	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// CategoryRollup groups entries by category and sums their amounts. One
// result per category with at least one entry, ordered by first occurrence.
func CategoryRollup(entries []Entry) []CategoryAmount {
	idx := make(map[string]int)
	var out []CategoryAmount
	for _, e := range entries {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, CategoryAmount{Category: e.Category})
		}
		out[i].Amount += e.Amount
	}
	return out
}

// DailyExpenses sums expenses per UTC calendar date over the trailing window.
// An expense dated exactly now - windowDays is included. Dates with no
// expenses do not appear. Buckets are returned in ascending date order.
// A non-positive window or zero reference time yields an empty series.
func DailyExpenses(expenses []Entry, windowDays int, now time.Time) []DailyAmount {
	if windowDays <= 0 || now.IsZero() {
		return nil
	}
	cutoff := now.AddDate(0, 0, -windowDays)
	sums := make(map[string]int64)
	for _, e := range expenses {
		if e.Date.Before(cutoff) {
			continue
		}
		sums[e.Date.UTC().Format("2006-01-02")] += e.Amount
	}
	out := make([]DailyAmount, 0, len(sums))
	for date, amount := range sums {
		out = append(out, DailyAmount{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
