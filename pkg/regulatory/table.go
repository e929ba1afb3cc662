// Package regulatory holds the read-only Australian tax, duty, lending and
// superannuation tables. Every table is built once at package init and never
// mutated, so lookups are safe for concurrent use without locking.
package regulatory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/datetime"
)

// Table is a set of entries keyed by financial year.
type Table[T any] struct {
	years   []int
	entries map[int]T
}

// NewTable builds a table from entries keyed by "YYYY-YY" strings. It panics
// on a malformed key or an empty table; tables are package-level constants.
func NewTable[T any](entries map[string]T) Table[T] {
	if len(entries) == 0 {
		panic("regulatory: empty table")
	}
	t := Table[T]{entries: make(map[int]T, len(entries))}
	for key, entry := range entries {
		fy := datetime.MustParseFinancialYear(key)
		t.entries[fy.StartYear] = entry
		t.years = append(t.years, fy.StartYear)
	}
	sort.Ints(t.years)
	return t
}

// Resolve returns the entry for fy, or the closest tabulated year that starts
// on or before it. Requests older than every entry fall back to the oldest.
// The financial year actually used is returned alongside the entry.
func (t Table[T]) Resolve(fy datetime.FinancialYear) (T, datetime.FinancialYear) {
	chosen := t.years[0]
	for _, year := range t.years {
		if year > fy.StartYear {
			break
		}
		chosen = year
	}
	return t.entries[chosen], datetime.FinancialYear{StartYear: chosen}
}

// Years lists the tabulated financial years in ascending order.
func (t Table[T]) Years() []datetime.FinancialYear {
	years := make([]datetime.FinancialYear, len(t.years))
	for i, y := range t.years {
		years[i] = datetime.FinancialYear{StartYear: y}
	}
	return years
}

// ResolveYear turns a caller-supplied financial year into a FinancialYear.
// An empty or unparseable value degrades to the year containing now.
func ResolveYear(value string, now time.Time) datetime.FinancialYear {
	if value == "" {
		return datetime.CurrentFinancialYear(now)
	}
	fy, err := datetime.ParseFinancialYear(value)
	if err != nil {
		return datetime.CurrentFinancialYear(now)
	}
	return fy
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
