package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"

	"gorm.io/gorm"

	"grosz/internal/clock"
	apperrors "grosz/internal/errors"
	"grosz/internal/models"
	"grosz/internal/money"
)

// UncategorizedLabel groups expenses without a category in summaries
// and exports.
const UncategorizedLabel = "Bez kategorii"

// dateOnlyFormat is the wire format of report date filters.
const dateOnlyFormat = "2006-01-02"

// csvDateFormat is the date column format of the CSV export.
const csvDateFormat = "2006-01-02 15:04"

// recentExpenseCount is how many expenses the dashboard shows.
const recentExpenseCount = 5

// reportService computes dashboard aggregates, filtered reports, and
// the CSV export.
type reportService struct {
	db       *gorm.DB
	budgets  BudgetServicer
	expenses ExpenseServicer
	clock    clock.Clock
	loc      *time.Location
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, budgets BudgetServicer, expenses ExpenseServicer, clk clock.Clock, loc *time.Location) ReportServicer {
	return &reportService{db: db, budgets: budgets, expenses: expenses, clock: clk, loc: loc}
}

// monthBounds returns the first instant of the current calendar month
// and of the previous one, in the service's location. The previous
// month is found by stepping one nanosecond back from the current
// month's start, which is immune to day-of-month arithmetic surprises.
func (s *reportService) monthBounds() (currentStart, lastStart time.Time) {
	now := s.clock.Now().In(s.loc)
	currentStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	lastMonthEnd := currentStart.Add(-time.Nanosecond)
	lastStart = time.Date(lastMonthEnd.Year(), lastMonthEnd.Month(), 1, 0, 0, 0, 0, s.loc)
	return currentStart, lastStart
}

// sumExpenses totals the user's expenses with from <= date < to.
// A zero "to" leaves the range open-ended.
func (s *reportService) sumExpenses(userID uint, from, to time.Time) (int64, error) {
	q := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ? AND date >= ?", userID, from)
	if !to.IsZero() {
		q = q.Where("date < ?", to)
	}

	var total int64
	if err := q.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// Dashboard aggregates the current month for a user: this and last
// month's totals, the month's budget (created at zero on first view),
// the remaining budget, and the most recent expenses. A negative
// remainder means the budget is overspent, not an error.
func (s *reportService) Dashboard(userID uint) (*DashboardSummary, error) {
	budget, err := s.budgets.GetOrCreateCurrent(userID)
	if err != nil {
		return nil, err
	}

	currentStart, lastStart := s.monthBounds()

	totalThisMonth, err := s.sumExpenses(userID, currentStart, time.Time{})
	if err != nil {
		return nil, err
	}

	totalLastMonth, err := s.sumExpenses(userID, lastStart, currentStart)
	if err != nil {
		return nil, err
	}

	recent, err := s.expenses.RecentExpenses(userID, recentExpenseCount)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Year:                budget.Year,
		Month:               budget.Month,
		MonthlyLimitCents:   budget.LimitCents,
		TotalThisMonthCents: totalThisMonth,
		TotalLastMonthCents: totalLastMonth,
		RemainingCents:      budget.LimitCents - totalThisMonth,
		RecentExpenses:      recent,
	}, nil
}

// Report applies the optional filters to the user's expenses and
// aggregates the result. Malformed date strings are ignored rather
// than rejected: the corresponding filter is simply not applied.
func (s *reportService) Report(userID uint, filter ReportFilter) (*Report, error) {
	q := s.db.Preload("Category").Where("user_id = ?", userID)

	if filter.StartDate != "" {
		if start, err := time.ParseInLocation(dateOnlyFormat, filter.StartDate, s.loc); err == nil {
			q = q.Where("date >= ?", start)
		}
	}
	if filter.EndDate != "" {
		if end, err := time.ParseInLocation(dateOnlyFormat, filter.EndDate, s.loc); err == nil {
			// Inclusive to 23:59:59 of the given day. Calendar math, not
			// duration math: on DST-transition days the day is not 24h.
			dayEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, s.loc)
			q = q.Where("date <= ?", dayEnd)
		}
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}

	var expenses []models.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var total int64
	for _, e := range expenses {
		total += e.AmountCents
	}

	return &Report{
		Expenses:   expenses,
		TotalCents: total,
		Summary:    summarizeByCategory(expenses),
	}, nil
}

// summarizeByCategory groups expenses by category name, sums the
// amounts per group, and sorts descending by sum. Ties break on name
// so the order is deterministic.
func summarizeByCategory(expenses []models.Expense) []CategorySum {
	sums := make(map[string]int64)
	for _, e := range expenses {
		name := UncategorizedLabel
		if e.Category != nil {
			name = e.Category.Name
		}
		sums[name] += e.AmountCents
	}

	summary := make([]CategorySum, 0, len(sums))
	for name, total := range sums {
		summary = append(summary, CategorySum{Name: name, TotalCents: total})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].TotalCents != summary[j].TotalCents {
			return summary[i].TotalCents > summary[j].TotalCents
		}
		return summary[i].Name < summary[j].Name
	})
	return summary
}

// ExportCSV renders all the user's expenses as semicolon-delimited CSV
// with a UTF-8 BOM so that spreadsheet applications detect the
// encoding. Columns: title, amount, category, date, description.
func (s *reportService) ExportCSV(userID uint) ([]byte, error) {
	var expenses []models.Expense
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	records := [][]string{{"Tytuł", "Kwota", "Kategoria", "Data", "Opis"}}
	for _, e := range expenses {
		name := UncategorizedLabel
		if e.Category != nil {
			name = e.Category.Name
		}
		records = append(records, []string{
			e.Title,
			money.FormatCents(e.AmountCents),
			name,
			e.Date.In(s.loc).Format(csvDateFormat),
			e.Description,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return buf.Bytes(), nil
}
