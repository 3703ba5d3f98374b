package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "grosz/internal/errors"
	"grosz/internal/models"
	"grosz/internal/money"
	"grosz/internal/services"
)

// BudgetHandler handles monthly budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting the
// current month's spending limit. The limit is a decimal string; zero
// means no limit has been decided yet.
type SetBudgetRequest struct {
	MonthlyLimit string `json:"monthly_limit" binding:"required,money_amount"`
}

// BudgetResponse represents a monthly budget in the response
type BudgetResponse struct {
	ID           uint   `json:"id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	LimitCents   int64  `json:"limit_cents"`
	MonthlyLimit string `json:"monthly_limit"`
}

func budgetResponse(budget *models.MonthlyBudget) gin.H {
	return gin.H{
		"id":            budget.ID,
		"year":          budget.Year,
		"month":         budget.Month,
		"limit_cents":   budget.LimitCents,
		"monthly_limit": money.FormatCents(budget.LimitCents),
	}
}

// GetCurrentBudget handles retrieving the current month's budget
// @Summary     Get current budget
// @Description Get the budget for the current month, creating it with a zero limit if absent
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} BudgetResponse "Current month's budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/current [get]
func (h *BudgetHandler) GetCurrentBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetOrCreateCurrent(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budgetResponse(budget)})
}

// SetCurrentBudget handles setting the current month's spending limit
// @Summary     Set current budget
// @Description Set the spending limit for the current month, creating the budget row if absent
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBudgetRequest true "Monthly limit"
// @Success     200 {object} BudgetResponse "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/current [put]
func (h *BudgetHandler) SetCurrentBudget(c *gin.Context) {
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

	limitCents, err := money.ParseCents(req.MonthlyLimit)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidAmount)
		return
	}

	budget, err := h.budgetService.SetCurrentLimit(userID, limitCents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_BUDGET", "monthly_budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"year": budget.Year, "month": budget.Month, "limit_cents": budget.LimitCents})

	c.JSON(http.StatusOK, gin.H{"budget": budgetResponse(budget)})
}
