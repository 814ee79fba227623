package models

// BudgetPeriod represents the recurring cycle a budget is measured over.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case BudgetPeriodMonthly, BudgetPeriodWeekly, BudgetPeriodYearly:
		return true
	}
	return false
}

// BudgetAlerts holds the alert preferences attached to a budget.
type BudgetAlerts struct {
	Enabled   bool    `gorm:"default:true" json:"enabled"`
	Threshold float64 `gorm:"default:80" json:"threshold"`
}

// Budget represents a per-category spending limit for a user.
// A user has at most one budget per category; the unique index enforces it.
type Budget struct {
	Base
	UserID   uint         `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	Category Category     `gorm:"size:32;not null;uniqueIndex:idx_budgets_user_category" json:"category"`
	Amount   float64      `gorm:"not null" json:"amount"`
	Period   BudgetPeriod `gorm:"size:16;not null;default:monthly" json:"period"`
	Alerts   BudgetAlerts `gorm:"embedded;embeddedPrefix:alert_" json:"alerts"`
}
