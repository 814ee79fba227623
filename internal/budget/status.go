package budget

import "math"

// Status classifies how far through a budget the spending is. The values are
// mutually exclusive and checked in a fixed precedence order.
type Status string

const (
	StatusNoBudget Status = "no-budget"
	StatusOver     Status = "over"
	StatusWarning  Status = "warning"
	StatusGood     Status = "good"
)

// Evaluation is the result of comparing spending against a budgeted amount.
type Evaluation struct {
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	Overage    float64 `json:"overage,omitempty"`
	Status     Status  `json:"status"`
}

// Evaluate compares spent against budgeted and classifies the result.
//
// Precedence, first match wins:
//  1. no-budget when budgeted == 0. A zero budget means "not configured",
//     so it wins even when spent > 0.
//  2. over when spent strictly exceeds budgeted.
//  3. warning when the percentage used exceeds threshold.
//  4. good otherwise.
//
// The percentage is rounded to two decimals for output, but the warning
// check uses the unrounded ratio. Remaining never goes negative; the
// shortfall is reported as Overage instead.
func Evaluate(budgeted, spent, threshold float64) Evaluation {
	var pct float64
	if budgeted > 0 {
		pct = spent / budgeted * 100
	}

	ev := Evaluation{
		Percentage: round2(pct),
		Remaining:  math.Max(0, budgeted-spent),
	}

	switch {
	case budgeted == 0:
		ev.Status = StatusNoBudget
	case spent > budgeted:
		ev.Status = StatusOver
		ev.Overage = spent - budgeted
	case pct > threshold:
		ev.Status = StatusWarning
	default:
		ev.Status = StatusGood
	}
	return ev
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
