package budget

import (
	"time"

	"spendly/internal/models"
)

// Entry is the slice of an expense the aggregator cares about.
type Entry struct {
	Category models.Category
	Amount   float64
	Date     time.Time
}

// Sum totals the amounts of entries that fall inside r. When category is
// non-empty only entries of that category count. An empty result sums to 0.
func Sum(entries []Entry, category models.Category, r Range) float64 {
	var total float64
	for _, e := range entries {
		if category != "" && e.Category != category {
			continue
		}
		if r.Contains(e.Date) {
			total += e.Amount
		}
	}
	return total
}

// SumByCategory groups in-range entries by category and totals each group in
// a single pass. Categories with no in-range entries are absent from the map.
func SumByCategory(entries []Entry, r Range) map[models.Category]float64 {
	totals := make(map[models.Category]float64)
	for _, e := range entries {
		if r.Contains(e.Date) {
			totals[e.Category] += e.Amount
		}
	}
	return totals
}
