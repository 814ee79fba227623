package services

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
	"spendly/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense records a new expense. The date defaults to now when omitted.
func (s *expenseService) CreateExpense(
	userID uint,
	title string,
	amount float64,
	category models.Category,
	description string,
	date *time.Time,
) (*models.Expense, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	expenseDate := time.Now()
	if date != nil {
		expenseDate = *date
	}

	expense := &models.Expense{
		UserID:      userID,
		Title:       title,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        expenseDate,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// sortColumns maps client sort keys to SQL columns. Anything else sorts by date.
var sortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"title":      "title",
	"category":   "category",
	"created_at": "created_at",
}

// GetUserExpenses retrieves a paginated, filtered list of the user's expenses.
func (s *expenseService) GetUserExpenses(
	userID uint,
	page pagination.PageRequest,
	filter ExpenseFilter,
) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "date"
	}
	direction := "DESC"
	if filter.Order == "asc" {
		direction = "ASC"
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order(column + " " + direction).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.Limit, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	return q
}

// GetExpenseByID retrieves an expense by ID for a specific user.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense mutates the provided fields of an existing expense.
func (s *expenseService) UpdateExpense(userID, expenseID uint, update ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Category != nil {
		if !update.Category.Valid() {
			return nil, apperrors.ErrInvalidCategory
		}
		updates["category"] = *update.Category
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteExpense removes an expense permanently.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetExpenseStats aggregates the user's expenses: overall totals, a
// per-category breakdown, the five most recent entries, and a daily trend
// for the seven days before now.
func (s *expenseService) GetExpenseStats(userID uint, startDate, endDate *time.Time, now time.Time) (*ExpenseStats, error) {
	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if startDate != nil {
		base = base.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		base = base.Where("date <= ?", *endDate)
	}

	var overview struct {
		Total float64
		Count int64
	}
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Scan(&overview).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &ExpenseStats{
		Overview: ExpenseOverview{
			TotalAmount: overview.Total,
			TotalCount:  overview.Count,
		},
		CategoryBreakdown: []CategoryStat{},
		DailyTrend:        []DailyStat{},
	}
	if overview.Count > 0 {
		stats.Overview.AverageAmount = overview.Total / float64(overview.Count)
	}

	var breakdown []CategoryStat
	if err := base.Session(&gorm.Session{}).
		Select("category, SUM(amount) as total, COUNT(*) as count, AVG(amount) as avg_amount").
		Group("category").
		Order("total DESC").
		Scan(&breakdown).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if breakdown != nil {
		stats.CategoryBreakdown = breakdown
	}

	var recent []models.Expense
	if err := base.Session(&gorm.Session{}).
		Order("date DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	stats.RecentExpenses = recent
	if stats.RecentExpenses == nil {
		stats.RecentExpenses = []models.Expense{}
	}

	trend, err := s.dailyTrend(userID, now)
	if err != nil {
		return nil, err
	}
	stats.DailyTrend = trend

	return stats, nil
}

// dailyTrend groups the last seven days of spending by calendar day. The
// grouping happens in Go so the query stays portable between Postgres and
// the SQLite used in tests.
func (s *expenseService) dailyTrend(userID uint, now time.Time) ([]DailyStat, error) {
	since := now.AddDate(0, 0, -7)

	var rows []struct {
		Date   time.Time
		Amount float64
	}
	if err := s.db.Model(&models.Expense{}).
		Select("date, amount").
		Where("user_id = ? AND date >= ?", userID, since).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byDay := make(map[string]*DailyStat)
	for _, row := range rows {
		day := row.Date.Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &DailyStat{Date: day}
			byDay[day] = stat
		}
		stat.Total += row.Amount
		stat.Count++
	}

	trend := make([]DailyStat, 0, len(byDay))
	for _, stat := range byDay {
		trend = append(trend, *stat)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend, nil
}
