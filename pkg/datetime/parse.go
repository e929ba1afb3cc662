// Package datetime provides financial-year and calendar-month utilities.
// All comparisons use calendar fields (year, month, day) so results never
// depend on the time zone of the instants passed in.
package datetime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/serviceability/pkg/constants"
)

// ErrInvalidFinancialYear is returned when a financial year string matches none of the accepted formats.
var ErrInvalidFinancialYear = errors.New("invalid financial year")

var (
	shortFYRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	longFYRe  = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
	fyEndRe   = regexp.MustCompile(`^FY(\d{4})$`)
)

// FinancialYear is an Australian financial year running 1 July to 30 June,
// identified by the calendar year it starts in.
type FinancialYear struct {
	StartYear int
}

// ParseFinancialYear accepts "2024-25", "2024-2025" or "FY2025" (the year the FY ends).
func ParseFinancialYear(value string) (FinancialYear, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))

	if m := shortFYRe.FindStringSubmatch(trimmed); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		if (start+1)%100 != end {
			return FinancialYear{}, fmt.Errorf("%w: %q does not span consecutive years", ErrInvalidFinancialYear, value)
		}
		return FinancialYear{StartYear: start}, nil
	}

	if m := longFYRe.FindStringSubmatch(trimmed); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		if start+1 != end {
			return FinancialYear{}, fmt.Errorf("%w: %q does not span consecutive years", ErrInvalidFinancialYear, value)
		}
		return FinancialYear{StartYear: start}, nil
	}

	if m := fyEndRe.FindStringSubmatch(trimmed); m != nil {
		end, _ := strconv.Atoi(m[1])
		return FinancialYear{StartYear: end - 1}, nil
	}

	return FinancialYear{}, fmt.Errorf("%w: %q", ErrInvalidFinancialYear, value)
}

// MustParseFinancialYear parses a financial year and panics on error.
// This is intended for package-level tables and tests where the value is known to be valid.
func MustParseFinancialYear(value string) FinancialYear {
	fy, err := ParseFinancialYear(value)
	if err != nil {
		panic(err)
	}
	return fy
}

// CurrentFinancialYear returns the financial year containing the calendar date of now.
func CurrentFinancialYear(now time.Time) FinancialYear {
	if int(now.Month()) >= constants.FinancialYearStartMonth {
		return FinancialYear{StartYear: now.Year()}
	}
	return FinancialYear{StartYear: now.Year() - 1}
}

// String formats the financial year as "YYYY-YY".
func (fy FinancialYear) String() string {
	return fmt.Sprintf("%d-%02d", fy.StartYear, (fy.StartYear+1)%100)
}

// Start returns 1 July of the starting year.
func (fy FinancialYear) Start() time.Time {
	return Date(fy.StartYear, time.July, 1)
}

// End returns 30 June of the following year.
func (fy FinancialYear) End() time.Time {
	return Date(fy.StartYear+1, time.June, 30)
}

// Contains reports whether the calendar date of t falls within the financial
// year, inclusive of both 1 July and 30 June.
func (fy FinancialYear) Contains(t time.Time) bool {
	d := CalendarDate(t)
	return !d.Before(fy.Start()) && !d.After(fy.End())
}

// Date builds a midnight UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CalendarDate strips the clock and zone from t while keeping its local
// year, month and day.
func CalendarDate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// AddCalendarMonths moves a calendar date forward by whole months. A day that
// does not exist in the target month clamps to that month's last day.
func AddCalendarMonths(t time.Time, months int) time.Time {
	d := CalendarDate(t)
	firstOfTarget := Date(d.Year(), d.Month(), 1).AddDate(0, months, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > lastDay {
		day = lastDay
	}
	return Date(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

// HeldAtLeastMonths reports whether sale falls on or after the date that is
// the given number of calendar months after purchase.
func HeldAtLeastMonths(purchase, sale time.Time, months int) bool {
	return !CalendarDate(sale).Before(AddCalendarMonths(purchase, months))
}

// WholeMonthsBetween counts the complete calendar months from purchase to
// sale. A sale before purchase yields zero.
func WholeMonthsBetween(purchase, sale time.Time) int {
	from, to := CalendarDate(purchase), CalendarDate(sale)
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	if AddCalendarMonths(from, months).After(to) {
		months--
	}
	return months
}

// DateLayout is the calendar date format accepted in requests.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}
