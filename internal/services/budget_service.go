package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"spendly/internal/budget"
	apperrors "spendly/internal/errors"
	"spendly/internal/models"
)

// budgetService handles budget-related business logic. Every status and
// comparison it returns is produced by the budget package's evaluator, so
// the classification rules live in exactly one place.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

const defaultAlertThreshold = 80

// SetBudget creates a budget for the category, or updates the existing one
// in place: a user holds at most one budget per category. The returned bool
// is true when a new budget was created.
func (s *budgetService) SetBudget(
	userID uint,
	category models.Category,
	amount float64,
	period *models.BudgetPeriod,
	alerts *AlertsInput,
) (*models.Budget, bool, error) {
	if !category.Valid() {
		return nil, false, apperrors.ErrInvalidCategory
	}
	if amount < 0 {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than or equal to 0")
	}
	if period != nil && !period.Valid() {
		return nil, false, apperrors.ErrInvalidPeriod
	}

	var existing models.Budget
	err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"amount": amount}
		if period != nil {
			updates["period"] = *period
		}
		if alerts != nil {
			if alerts.Enabled != nil {
				updates["alert_enabled"] = *alerts.Enabled
			}
			if alerts.Threshold != nil {
				updates["alert_threshold"] = *alerts.Threshold
			}
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &existing, false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		b := &models.Budget{
			UserID:   userID,
			Category: category,
			Amount:   amount,
			Period:   models.BudgetPeriodMonthly,
			Alerts: models.BudgetAlerts{
				Enabled:   true,
				Threshold: defaultAlertThreshold,
			},
		}
		if period != nil {
			b.Period = *period
		}
		if alerts != nil {
			if alerts.Enabled != nil {
				b.Alerts.Enabled = *alerts.Enabled
			}
			if alerts.Threshold != nil {
				b.Alerts.Threshold = *alerts.Threshold
			}
		}
		if err := s.db.Create(b).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return b, true, nil

	default:
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetBudgetStatuses returns every budget the user has, each evaluated
// against the current calendar month's spending. The month window applies
// to all budgets here regardless of their own period; per-period windows
// are used by GetBudgetStatus and GetComparison.
func (s *budgetService) GetBudgetStatuses(userID uint, now time.Time) ([]BudgetStatus, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	window := budget.Resolve(models.BudgetPeriodMonthly, now)
	entries, err := s.fetchEntries(userID, window)
	if err != nil {
		return nil, err
	}
	totals := budget.SumByCategory(entries, window)

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := totals[b.Category]
		ev := budget.Evaluate(b.Amount, spent, b.Alerts.Threshold)
		statuses = append(statuses, BudgetStatus{
			Budget:     b,
			Spent:      spent,
			Percentage: ev.Percentage,
			Remaining:  ev.Remaining,
			Overage:    ev.Overage,
			Status:     ev.Status,
		})
	}
	return statuses, nil
}

// GetBudgetStatus evaluates a single category's budget over its own period
// and returns the resolved window alongside the status.
func (s *budgetService) GetBudgetStatus(userID uint, category models.Category, now time.Time) (*BudgetDetail, error) {
	var b models.Budget
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	window := budget.Resolve(b.Period, now)
	entries, err := s.fetchEntries(userID, window)
	if err != nil {
		return nil, err
	}
	spent := budget.Sum(entries, b.Category, window)
	ev := budget.Evaluate(b.Amount, spent, b.Alerts.Threshold)

	return &BudgetDetail{
		BudgetStatus: BudgetStatus{
			Budget:     b,
			Spent:      spent,
			Percentage: ev.Percentage,
			Remaining:  ev.Remaining,
			Overage:    ev.Overage,
			Status:     ev.Status,
		},
		Window: window,
	}, nil
}

// DeleteBudget removes the budget for a category.
func (s *budgetService) DeleteBudget(userID uint, category models.Category) error {
	var b models.Budget
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&b).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetComparison builds the budget-versus-spending report for all of the
// user's budgets with the given period. Spending is aggregated once for the
// whole window; the period total includes categories with no budget at all.
func (s *budgetService) GetComparison(userID uint, period models.BudgetPeriod, now time.Time) (*ComparisonReport, error) {
	if !period.Valid() {
		period = models.BudgetPeriodMonthly
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND period = ?", userID, period).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	window := budget.Resolve(period, now)
	entries, err := s.fetchEntries(userID, window)
	if err != nil {
		return nil, err
	}
	totals := budget.SumByCategory(entries, window)

	lines := make([]budget.Line, 0, len(budgets))
	for _, b := range budgets {
		lines = append(lines, budget.Line{
			Category:  b.Category,
			Amount:    b.Amount,
			Threshold: b.Alerts.Threshold,
		})
	}

	report := budget.BuildComparison(lines, totals)
	return &ComparisonReport{
		Period:     ReportPeriod{Type: period, Range: window},
		Summary:    report.Summary,
		Categories: report.Categories,
	}, nil
}

// fetchEntries loads the user's expenses inside the window as aggregator
// entries. The upper bound uses the exclusive end so expenses timestamped
// anywhere on the last day are included.
func (s *budgetService) fetchEntries(userID uint, window budget.Range) ([]budget.Entry, error) {
	var rows []struct {
		Category models.Category
		Amount   float64
		Date     time.Time
	}
	if err := s.db.Model(&models.Expense{}).
		Select("category, amount, date").
		Where("user_id = ? AND date >= ? AND date < ?", userID, window.Start, window.ExclusiveEnd()).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]budget.Entry, len(rows))
	for i, row := range rows {
		entries[i] = budget.Entry{Category: row.Category, Amount: row.Amount, Date: row.Date}
	}
	return entries, nil
}
