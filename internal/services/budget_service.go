package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grosz/internal/clock"
	apperrors "grosz/internal/errors"
	"grosz/internal/models"
)

// budgetService handles monthly budget business logic.
type budgetService struct {
	db    *gorm.DB
	clock clock.Clock
	loc   *time.Location
}

// NewBudgetService creates a new BudgetServicer. The location decides
// which calendar month "current" means.
func NewBudgetService(db *gorm.DB, clk clock.Clock, loc *time.Location) BudgetServicer {
	return &budgetService{db: db, clock: clk, loc: loc}
}

// currentYearMonth returns the clock's year and month in the service's
// configured location.
func (s *budgetService) currentYearMonth() (int, int) {
	now := s.clock.Now().In(s.loc)
	return now.Year(), int(now.Month())
}

// GetOrCreateCurrent returns the budget row for the current month,
// creating it with a zero limit if it does not exist yet. When two
// requests race on the insert, the unique index on (user_id, year,
// month) lets exactly one win; the loser re-fetches the winner's row.
func (s *budgetService) GetOrCreateCurrent(userID uint) (*models.MonthlyBudget, error) {
	year, month := s.currentYearMonth()
	return s.getOrCreate(userID, year, month)
}

func (s *budgetService) getOrCreate(userID uint, year, month int) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&budget).Error
	if err == nil {
		return &budget, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget = models.MonthlyBudget{
		UserID:     userID,
		Year:       year,
		Month:      month,
		LimitCents: 0,
	}
	if createErr := s.db.Create(&budget).Error; createErr != nil {
		// A concurrent request may have inserted the same (user, year,
		// month) first; in that case the existing row is the answer.
		refetchErr := s.db.Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
			First(&budget).Error
		if refetchErr != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, createErr)
		}
	}

	return &budget, nil
}

// SetCurrentLimit upserts the current month's spending limit.
func (s *budgetService) SetCurrentLimit(userID uint, limitCents int64) (*models.MonthlyBudget, error) {
	if limitCents < 0 {
		return nil, apperrors.ErrNegativeLimit
	}

	budget, err := s.GetOrCreateCurrent(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(budget).Update("limit_cents", limitCents).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget.LimitCents = limitCents
	return budget, nil
}
