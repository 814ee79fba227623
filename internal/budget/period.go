// Package budget implements the budget-versus-spending computation shared by
// every budget endpoint: period resolution, spend aggregation, status
// evaluation, and the comparison report. Everything here is a pure function
// over its arguments, so it is safe to call from concurrent request handlers.
package budget

import (
	"time"

	"spendly/internal/models"
)

// Range is an inclusive [Start, End] window of calendar days. Both bounds
// are midnight instants; End names the last day of the window, and the
// whole of that day belongs to the range.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ExclusiveEnd returns the first instant after the range, i.e. midnight of
// the day following End. Use this for date < ? comparisons so expenses
// timestamped late on the last day still count.
func (r Range) ExclusiveEnd() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls inside the range, including any time of
// day on the final day.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.ExclusiveEnd())
}

// Resolve computes the calendar window for a budget period around the
// reference instant. Unrecognized periods resolve as monthly; that is the
// documented default, not an error.
//
//	monthly: first through last day of the reference month
//	weekly:  most recent Sunday on or before the reference day, plus six days
//	yearly:  Jan 1 through Dec 31 of the reference year
func Resolve(period models.BudgetPeriod, ref time.Time) Range {
	loc := ref.Location()
	switch period {
	case models.BudgetPeriodWeekly:
		day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return Range{Start: start, End: start.AddDate(0, 0, 6)}
	case models.BudgetPeriodYearly:
		return Range{
			Start: time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, loc),
			End:   time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, loc),
		}
	default:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		// Day 0 of the next month normalizes to the last day of this one.
		end := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, loc)
		return Range{Start: start, End: end}
	}
}
