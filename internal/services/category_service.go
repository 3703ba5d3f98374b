package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "grosz/internal/errors"
	"grosz/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category for a user. The duplicate check
// is case-insensitive and runs inside the same transaction as the
// insert, so two racing requests cannot both pass it; the unique index
// on (user_id, LOWER(name)) remains as a storage-level backstop.
func (s *categoryService) CreateCategory(userID uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).
			Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateCategory
		}

		if err := tx.Create(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// GetUserCategories retrieves all categories for a user, sorted by name.
func (s *categoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// DeletionPreview returns the category together with the number of
// expenses a cascade delete would remove. This backs the confirmation
// step of the two-step deletion flow.
func (s *categoryService) DeletionPreview(userID, categoryID uint) (*models.Category, int64, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, 0, err
	}

	var count int64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, count, nil
}

// DeleteCategory deletes the category and every expense that references
// it, all-or-nothing. Partial completion would leave orphaned data, so
// both deletes share one transaction. The deletes are hard (Unscoped):
// a soft-deleted category would keep its name occupied in the unique
// index and block recreating a category with the same name.
func (s *categoryService) DeleteCategory(userID, categoryID uint) (int64, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("user_id = ? AND category_id = ?", userID, categoryID).
			Delete(&models.Expense{})
		if result.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
		}
		deleted = result.RowsAffected

		if err := tx.Unscoped().Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
