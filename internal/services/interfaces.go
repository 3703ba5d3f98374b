package services

import (
	"time"

	"grosz/internal/models"
	"grosz/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	// DeletionPreview returns the category and the number of expenses
	// that a cascade delete would remove. It never mutates.
	DeletionPreview(userID, categoryID uint) (*models.Category, int64, error)
	// DeleteCategory removes the category and all expenses referencing
	// it in one transaction, returning how many expenses were deleted.
	DeleteCategory(userID, categoryID uint) (int64, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID uint, title string, amountCents int64, categoryID *uint, date time.Time, description string) (*models.Expense, error)
	GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, title string, amountCents int64, categoryID *uint, date time.Time, description string) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	RecentExpenses(userID uint, limit int) ([]models.Expense, error)
}

// BudgetServicer defines the contract for monthly budget logic.
type BudgetServicer interface {
	// GetOrCreateCurrent returns the budget row for the clock's current
	// (year, month), creating it with a zero limit when absent. The
	// operation is idempotent under concurrent callers.
	GetOrCreateCurrent(userID uint) (*models.MonthlyBudget, error)
	// SetCurrentLimit upserts the current month's limit.
	SetCurrentLimit(userID uint, limitCents int64) (*models.MonthlyBudget, error)
}

// DashboardSummary aggregates the current and previous month for one user.
type DashboardSummary struct {
	Year                int              `json:"year"`
	Month               int              `json:"month"`
	MonthlyLimitCents   int64            `json:"monthly_limit_cents"`
	TotalThisMonthCents int64            `json:"total_this_month_cents"`
	TotalLastMonthCents int64            `json:"total_last_month_cents"`
	RemainingCents      int64            `json:"remaining_cents"`
	RecentExpenses      []models.Expense `json:"recent_expenses"`
}

// ReportFilter holds the raw optional filter parameters of a report
// request. Dates are kept as strings because malformed values are
// ignored rather than rejected.
type ReportFilter struct {
	StartDate  string
	EndDate    string
	CategoryID *uint
}

// CategorySum is one row of a category summary: the total spent under
// a single category name.
type CategorySum struct {
	Name       string `json:"name"`
	TotalCents int64  `json:"total_cents"`
}

// Report is a filtered expense collection with its aggregates.
type Report struct {
	Expenses   []models.Expense `json:"expenses"`
	TotalCents int64            `json:"total_cents"`
	Summary    []CategorySum    `json:"summary"`
}

// ReportServicer defines the contract for aggregation and export logic.
type ReportServicer interface {
	Dashboard(userID uint) (*DashboardSummary, error)
	Report(userID uint, filter ReportFilter) (*Report, error)
	// ExportCSV renders all the user's expenses as a UTF-8 CSV with a
	// BOM prefix and semicolon delimiters.
	ExportCSV(userID uint) ([]byte, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
