package budget

import (
	"math"
	"sort"

	"spendly/internal/models"
)

// Line is one budget as the comparison reporter sees it.
type Line struct {
	Category  models.Category
	Amount    float64
	Threshold float64
}

// Row is the per-category result of a comparison.
type Row struct {
	Category   models.Category `json:"category"`
	Budgeted   float64         `json:"budgeted"`
	Spent      float64         `json:"spent"`
	Remaining  float64         `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Status     Status          `json:"status"`
}

// Summary aggregates a comparison across all categories.
type Summary struct {
	TotalBudget       float64 `json:"totalBudget"`
	TotalSpent        float64 `json:"totalSpent"`
	TotalRemaining    float64 `json:"totalRemaining"`
	OverallPercentage float64 `json:"overallPercentage"`
}

// Report is the full budget-versus-spending comparison for one user.
type Report struct {
	Summary    Summary `json:"summary"`
	Categories []Row   `json:"categories"`
}

// BuildComparison evaluates every budget line against the aggregated spend
// and totals the result.
//
// TotalSpent covers every category present in spentByCategory, budgeted or
// not: spending in a category with no budget still counts toward the period
// total even though it produces no row. The overall percentage is computed
// from the raw totals and rounded independently of the per-row percentages.
// Rows are sorted by category enumeration order.
func BuildComparison(lines []Line, spentByCategory map[models.Category]float64) Report {
	rows := make([]Row, 0, len(lines))
	var totalBudget float64

	for _, line := range lines {
		spent := spentByCategory[line.Category]
		ev := Evaluate(line.Amount, spent, line.Threshold)
		rows = append(rows, Row{
			Category:   line.Category,
			Budgeted:   line.Amount,
			Spent:      spent,
			Remaining:  ev.Remaining,
			Percentage: ev.Percentage,
			Status:     ev.Status,
		})
		totalBudget += line.Amount
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Category.Ordinal() < rows[j].Category.Ordinal()
	})

	var totalSpent float64
	for _, spent := range spentByCategory {
		totalSpent += spent
	}

	summary := Summary{
		TotalBudget:    totalBudget,
		TotalSpent:     totalSpent,
		TotalRemaining: math.Max(0, totalBudget-totalSpent),
	}
	if totalBudget > 0 {
		summary.OverallPercentage = math.Round(totalSpent/totalBudget*10000) / 100
	}

	return Report{Summary: summary, Categories: rows}
}
