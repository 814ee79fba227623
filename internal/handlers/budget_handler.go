package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendly/internal/errors"
	"spendly/internal/models"
	"spendly/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// AlertsRequest represents the alert settings in a set-budget request.
// Omitted fields keep the existing setting, or the default on creation.
type AlertsRequest struct {
	Enabled   *bool    `json:"enabled"`
	Threshold *float64 `json:"threshold" binding:"omitempty,gte=0,lte=100"`
}

// SetBudgetRequest represents the request payload for setting a budget.
// Setting an existing category replaces that category's budget.
type SetBudgetRequest struct {
	Category models.Category      `json:"category" binding:"required,expense_category"`
	Amount   *float64             `json:"amount" binding:"required,gte=0"`
	Period   *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	Alerts   *AlertsRequest       `json:"alerts"`
}

// SetBudget handles creating or replacing a category budget.
// @Summary     Set a budget
// @Description Create or replace the budget for a category
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBudgetRequest true "Budget details"
// @Success     200 {object} models.Budget "Budget updated"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var alerts *services.AlertsInput
	if req.Alerts != nil {
		alerts = &services.AlertsInput{Enabled: req.Alerts.Enabled, Threshold: req.Alerts.Threshold}
	}

	budget, created, err := h.budgetService.SetBudget(userID, req.Category, *req.Amount, req.Period, alerts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	message := "Budget updated successfully"
	if created {
		status = http.StatusCreated
		message = "Budget created successfully"
	}

	c.JSON(status, gin.H{"message": message, "budget": budget})
}

// GetBudgets handles listing all budgets with their current-month status.
// @Summary     Get budgets
// @Description Get all budgets for the authenticated user with spending status
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []services.BudgetStatus "Budgets with status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	statuses, err := h.budgetService.GetBudgetStatuses(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": statuses})
}

// GetComparison handles the budget-versus-spending comparison report.
// @Summary     Get budget comparison
// @Description Compare budgeted amounts against actual spending for a period
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "Budget period (monthly/weekly/yearly, default monthly)"
// @Success     200 {object} services.ComparisonReport "Comparison report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/comparison [get]
func (h *BudgetHandler) GetComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	period := models.BudgetPeriod(c.DefaultQuery("period", string(models.BudgetPeriodMonthly)))

	report, err := h.budgetService.GetComparison(userID, period, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": report})
}

// GetBudget handles fetching a single category budget with its status.
// @Summary     Get a budget
// @Description Get the budget for a category with its spending status and period bounds
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Expense category"
// @Success     200 {object} services.BudgetDetail "Budget with status"
// @Failure     400 {object} ErrorResponse "Invalid category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := parseCategoryParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	detail, err := h.budgetService.GetBudgetStatus(userID, category, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": detail})
}

// DeleteBudget handles deleting a category budget.
// @Summary     Delete a budget
// @Description Delete the budget for a category
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Expense category"
// @Success     200 {object} map[string]string "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{category} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := parseCategoryParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(userID, category); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
