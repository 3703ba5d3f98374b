package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "grosz/internal/errors"
	"grosz/internal/money"
	"grosz/internal/services"
)

// ReportHandler handles dashboard, report, and export requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DashboardResponse represents the dashboard summary in the response.
// Amounts appear both as cents and as formatted decimal strings.
type DashboardResponse struct {
	Year              int    `json:"year"`
	Month             int    `json:"month"`
	MonthlyLimit      string `json:"monthly_limit"`
	TotalThisMonth    string `json:"total_this_month"`
	TotalLastMonth    string `json:"total_last_month"`
	RemainingBudget   string `json:"remaining_budget"`
	MonthlyLimitCents int64  `json:"monthly_limit_cents"`
}

// ReportResponse represents a filtered report in the response
type ReportResponse struct {
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

// GetDashboard handles the dashboard summary
// @Summary     Get dashboard
// @Description Get the current month's spending summary, budget state, and recent expenses
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Dashboard summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.Dashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":                   summary.Year,
		"month":                  summary.Month,
		"monthly_limit_cents":    summary.MonthlyLimitCents,
		"monthly_limit":          money.FormatCents(summary.MonthlyLimitCents),
		"total_this_month_cents": summary.TotalThisMonthCents,
		"total_this_month":       money.FormatCents(summary.TotalThisMonthCents),
		"total_last_month_cents": summary.TotalLastMonthCents,
		"total_last_month":       money.FormatCents(summary.TotalLastMonthCents),
		"remaining_cents":        summary.RemainingCents,
		"remaining":              money.FormatCents(summary.RemainingCents),
		"recent_expenses":        summary.RecentExpenses,
	})
}

// GetReport handles the filtered expense report
// @Summary     Get expense report
// @Description Get expenses filtered by date range and category, with totals and a per-category summary
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date  query string false "Start date (YYYY-MM-DD); malformed values are ignored"
// @Param       end_date    query string false "End date (YYYY-MM-DD, inclusive); malformed values are ignored"
// @Param       category_id query int    false "Filter by category ID"
// @Success     200 {object} ReportResponse "Filtered report"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.ReportFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	if v := c.Query("category_id"); v != "" {
		id, parseErr := strconv.ParseUint(v, 10, 32)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id"))
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	report, err := h.reportService.Report(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses":    report.Expenses,
		"total_cents": report.TotalCents,
		"total":       money.FormatCents(report.TotalCents),
		"summary":     report.Summary,
	})
}

// ExportCSV handles the CSV export of all expenses
// @Summary     Export expenses as CSV
// @Description Download all expenses as a semicolon-delimited, BOM-prefixed CSV file
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exports/csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	data, err := h.reportService.ExportCSV(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="wydatki.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
