package models

// MonthlyBudget holds one user's spending limit for a single calendar
// month. At most one row may exist per (user, year, month); the unique
// index is what makes the get-or-create in the budget service safe
// under concurrent requests.
type MonthlyBudget struct {
	Base
	UserID     uint  `gorm:"not null;uniqueIndex:idx_budgets_user_month" json:"user_id"`
	Year       int   `gorm:"not null;uniqueIndex:idx_budgets_user_month" json:"year"`
	Month      int   `gorm:"not null;uniqueIndex:idx_budgets_user_month" json:"month"`
	LimitCents int64 `gorm:"type:bigint;not null;default:0" json:"limit_cents"`
}
