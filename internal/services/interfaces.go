package services

import (
	"time"

	"spendly/internal/budget"
	"spendly/internal/models"
	"spendly/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdatePassword(userID uint, newPassword string) error
	ListActiveUserIDs() ([]uint, error)
}

// PasswordResetServicer defines the contract for the password reset flow.
type PasswordResetServicer interface {
	// RequestReset issues a reset token for the given email. To avoid
	// revealing whether an account exists, an unknown email returns an
	// empty token and no error.
	RequestReset(email string, now time.Time) (string, error)
	ResetPassword(token, newPassword string, now time.Time) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category  *models.Category
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	SortBy    string
	Order     string
}

// ExpenseUpdate holds the mutable expense fields; nil means leave unchanged.
type ExpenseUpdate struct {
	Title       *string
	Amount      *float64
	Category    *models.Category
	Description *string
	Date        *time.Time
}

// ExpenseOverview summarizes all expenses matching a stats query.
type ExpenseOverview struct {
	TotalAmount   float64 `json:"totalAmount"`
	TotalCount    int64   `json:"totalCount"`
	AverageAmount float64 `json:"averageAmount"`
}

// CategoryStat is a per-category aggregate for the stats endpoint.
type CategoryStat struct {
	Category  models.Category `json:"category"`
	Total     float64         `json:"total"`
	Count     int64           `json:"count"`
	AvgAmount float64         `json:"avgAmount"`
}

// DailyStat is a per-day aggregate for the recent spending trend.
type DailyStat struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// ExpenseStats is the payload of the expense statistics endpoint.
type ExpenseStats struct {
	Overview          ExpenseOverview  `json:"overview"`
	CategoryBreakdown []CategoryStat   `json:"categoryBreakdown"`
	RecentExpenses    []models.Expense `json:"recentExpenses"`
	DailyTrend        []DailyStat      `json:"dailyTrend"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, title string, amount float64, category models.Category, description string, date *time.Time) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, update ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	GetExpenseStats(userID uint, startDate, endDate *time.Time, now time.Time) (*ExpenseStats, error)
}

// AlertsInput holds optional alert settings on a set-budget call; nil fields
// keep the existing value (or the default when creating).
type AlertsInput struct {
	Enabled   *bool
	Threshold *float64
}

// BudgetStatus is a budget enriched with its spending evaluation for the
// current window. Computed fresh on every query, never persisted.
type BudgetStatus struct {
	models.Budget
	Spent      float64       `json:"spent"`
	Percentage float64       `json:"percentage"`
	Remaining  float64       `json:"remaining"`
	Overage    float64       `json:"overage,omitempty"`
	Status     budget.Status `json:"status"`
}

// BudgetDetail is a single budget's status plus its resolved period bounds.
// The bounds replace the budget's period name in the JSON output.
type BudgetDetail struct {
	BudgetStatus
	Window budget.Range `json:"period"`
}

// ReportPeriod names the comparison window and its resolved bounds.
type ReportPeriod struct {
	Type models.BudgetPeriod `json:"type"`
	budget.Range
}

// ComparisonReport is the budget-versus-spending comparison payload.
type ComparisonReport struct {
	Period     ReportPeriod   `json:"period"`
	Summary    budget.Summary `json:"summary"`
	Categories []budget.Row   `json:"categories"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	SetBudget(userID uint, category models.Category, amount float64, period *models.BudgetPeriod, alerts *AlertsInput) (*models.Budget, bool, error)
	GetBudgetStatuses(userID uint, now time.Time) ([]BudgetStatus, error)
	GetBudgetStatus(userID uint, category models.Category, now time.Time) (*BudgetDetail, error)
	DeleteBudget(userID uint, category models.Category) error
	GetComparison(userID uint, period models.BudgetPeriod, now time.Time) (*ComparisonReport, error)
}
