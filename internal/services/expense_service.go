package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"grosz/internal/clock"
	apperrors "grosz/internal/errors"
	"grosz/internal/models"
	"grosz/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, clk clock.Clock) ExpenseServicer {
	return &expenseService{db: db, clock: clk}
}

// validateExpenseFields checks the structural rules shared by create and
// update: non-empty title, strictly positive amount, and, when a
// category is referenced, that it belongs to the requesting user. A
// category owned by someone else is reported as not found.
func validateExpenseFields(tx *gorm.DB, userID uint, title string, amountCents int64, categoryID *uint) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if amountCents <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if categoryID != nil {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("id = ? AND user_id = ?", *categoryID, userID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrCategoryNotFound
		}
	}
	return nil
}

// CreateExpense creates a new expense for a user. The date defaults to
// the current time when the zero value is passed.
func (s *expenseService) CreateExpense(
	userID uint,
	title string,
	amountCents int64,
	categoryID *uint,
	date time.Time,
	description string,
) (*models.Expense, error) {
	if date.IsZero() {
		date = s.clock.Now()
	}

	expense := &models.Expense{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		AmountCents: amountCents,
		CategoryID:  categoryID,
		Date:        date,
		Description: description,
	}

	// The ownership check and the insert share one transaction so the
	// referenced category cannot disappear between them.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := validateExpenseFields(tx, userID, title, amountCents, categoryID); err != nil {
			return err
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// GetUserExpenses retrieves a paginated list of the user's expenses,
// newest first.
func (s *expenseService) GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces the mutable fields of an expense owned by the
// user. The same validation as creation applies.
func (s *expenseService) UpdateExpense(
	userID, expenseID uint,
	title string,
	amountCents int64,
	categoryID *uint,
	date time.Time,
	description string,
) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		date = expense.Date
	}

	updates := map[string]interface{}{
		"title":        strings.TrimSpace(title),
		"amount_cents": amountCents,
		"category_id":  categoryID,
		"date":         date,
		"description":  description,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := validateExpenseFields(tx, userID, title, amountCents, categoryID); err != nil {
			return err
		}
		if err := tx.Model(expense).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetExpenseByID(userID, expenseID)
}

// DeleteExpense deletes an expense owned by the user.
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

// RecentExpenses returns the user's most recent expenses, newest first.
func (s *expenseService) RecentExpenses(userID uint, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}
