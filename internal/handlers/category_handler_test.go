package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "grosz/internal/errors"
	"grosz/internal/models"
)

type mockCategoryService struct {
	createCategoryFn    func(userID uint, name string) (*models.Category, error)
	getUserCategoriesFn func(userID uint) ([]models.Category, error)
	getCategoryByIDFn   func(userID, categoryID uint) (*models.Category, error)
	deletionPreviewFn   func(userID, categoryID uint) (*models.Category, int64, error)
	deleteCategoryFn    func(userID, categoryID uint) (int64, error)
}

func (m *mockCategoryService) CreateCategory(userID uint, name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name)
	}
	return &models.Category{UserID: userID, Name: name}, nil
}

func (m *mockCategoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	if m.getUserCategoriesFn != nil {
		return m.getUserCategoriesFn(userID)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{Base: models.Base{ID: categoryID}, UserID: userID}, nil
}

func (m *mockCategoryService) DeletionPreview(userID, categoryID uint) (*models.Category, int64, error) {
	if m.deletionPreviewFn != nil {
		return m.deletionPreviewFn(userID, categoryID)
	}
	return &models.Category{Base: models.Base{ID: categoryID}, UserID: userID}, 0, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID uint) (int64, error) {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return 0, nil
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/categories", handler.CreateCategory)
	auth.POST("/categories/quick", handler.QuickAddCategory)
	auth.GET("/categories", handler.GetUserCategories)
	auth.GET("/categories/:id", handler.GetCategoryByID)
	auth.GET("/categories/:id/deletion-preview", handler.DeletionPreview)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(userID uint, name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: 3}, UserID: userID, Name: name}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"name":"Jedzenie"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		category := result["category"].(map[string]interface{})
		if category["name"] != "Jedzenie" {
			t.Errorf("expected name Jedzenie, got %v", category["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(_ uint, _ string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"name":"Jedzenie"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY")
	})
}

func TestCategoryHandler_QuickAddCategory(t *testing.T) {
	t.Run("returns minimal payload", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(userID uint, name string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: 5}, UserID: userID, Name: name}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories/quick", `{"name":"Paliwo"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != float64(5) {
			t.Errorf("expected id 5, got %v", result["id"])
		}
		if result["name"] != "Paliwo" {
			t.Errorf("expected name Paliwo, got %v", result["name"])
		}
		if len(result) != 2 {
			t.Errorf("expected only id and name in response, got %v", result)
		}
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(_ uint, _ string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories/quick", `{"name":"Paliwo"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeletionPreview(t *testing.T) {
	t.Run("returns category and expense count", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deletionPreviewFn: func(userID, categoryID uint) (*models.Category, int64, error) {
				return &models.Category{Base: models.Base{ID: categoryID}, UserID: userID, Name: "Jedzenie"}, 7, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories/3/deletion-preview", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["expense_count"] != float64(7) {
			t.Errorf("expected expense_count 7, got %v", result["expense_count"])
		}
	})

	t.Run("returns 404 for unknown category", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deletionPreviewFn: func(_, _ uint) (*models.Category, int64, error) {
				return nil, 0, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories/99/deletion-preview", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories/abc/deletion-preview", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns deleted expense count", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(_, _ uint) (int64, error) {
				return 4, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "DELETE", "/categories/3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["deleted_expenses"] != float64(4) {
			t.Errorf("expected deleted_expenses 4, got %v", result["deleted_expenses"])
		}
	})

	t.Run("returns 404 for other users category", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(_, _ uint) (int64, error) {
				return 0, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "DELETE", "/categories/3", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
