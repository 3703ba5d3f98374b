package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"grosz/internal/config"
	apperrors "grosz/internal/errors"
	"grosz/internal/models"
	"grosz/internal/pagination"
)

type mockExpenseService struct {
	createExpenseFn   func(userID uint, title string, amountCents int64, categoryID *uint, date time.Time, description string) (*models.Expense, error)
	getUserExpensesFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	getExpenseByIDFn  func(userID, expenseID uint) (*models.Expense, error)
	updateExpenseFn   func(userID, expenseID uint, title string, amountCents int64, categoryID *uint, date time.Time, description string) (*models.Expense, error)
	deleteExpenseFn   func(userID, expenseID uint) error
	recentExpensesFn  func(userID uint, limit int) ([]models.Expense, error)
}

func (m *mockExpenseService) CreateExpense(userID uint, title string, amountCents int64, categoryID *uint, date time.Time, description string) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, title, amountCents, categoryID, date, description)
	}
	return &models.Expense{UserID: userID, Title: title, AmountCents: amountCents}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.getUserExpensesFn != nil {
		return m.getUserExpensesFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}, UserID: userID}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID uint, title string, amountCents int64, categoryID *uint, date time.Time, description string) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, title, amountCents, categoryID, date, description)
	}
	return &models.Expense{Base: models.Base{ID: expenseID}, UserID: userID, Title: title, AmountCents: amountCents}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockExpenseService) RecentExpenses(userID uint, limit int) ([]models.Expense, error) {
	if m.recentExpensesFn != nil {
		return m.recentExpensesFn(userID, limit)
	}
	return []models.Expense{}, nil
}

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(1))
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses", handler.GetUserExpenses)
	auth.GET("/expenses/:id", handler.GetExpenseByID)
	auth.PUT("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("parses decimal amount to cents", func(t *testing.T) {
		var gotCents int64
		expSvc := &mockExpenseService{
			createExpenseFn: func(userID uint, title string, amountCents int64, _ *uint, _ time.Time, _ string) (*models.Expense, error) {
				gotCents = amountCents
				return &models.Expense{Base: models.Base{ID: 1}, UserID: userID, Title: title, AmountCents: amountCents}, nil
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"title":"Zakupy","amount":"45.99"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotCents != 4599 {
			t.Errorf("expected 4599 cents, got %d", gotCents)
		}
	})

	t.Run("accepts comma separator", func(t *testing.T) {
		var gotCents int64
		expSvc := &mockExpenseService{
			createExpenseFn: func(userID uint, title string, amountCents int64, _ *uint, _ time.Time, _ string) (*models.Expense, error) {
				gotCents = amountCents
				return &models.Expense{UserID: userID, Title: title, AmountCents: amountCents}, nil
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"title":"Kawa","amount":"12,50"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotCents != 1250 {
			t.Errorf("expected 1250 cents, got %d", gotCents)
		}
	})

	t.Run("returns 400 on malformed amount", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		for _, body := range []string{
			`{"title":"Zakupy","amount":"abc"}`,
			`{"title":"Zakupy","amount":"1.234"}`,
			`{"title":"Zakupy","amount":"-5"}`,
			`{"title":"Zakupy","amount":"1.٣"}`,
			`{"title":"Zakupy"}`,
		} {
			rec := doRequest(r, "POST", "/expenses", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("body %s: expected 400, got %d", body, rec.Code)
			}
		}
	})

	t.Run("passes parsed date", func(t *testing.T) {
		var gotDate time.Time
		expSvc := &mockExpenseService{
			createExpenseFn: func(userID uint, title string, amountCents int64, _ *uint, date time.Time, _ string) (*models.Expense, error) {
				gotDate = date
				return &models.Expense{UserID: userID, Title: title, AmountCents: amountCents}, nil
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"title":"Bilet","amount":"3.50","date":"2026-08-15T13:45"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		want := time.Date(2026, 8, 15, 13, 45, 0, 0, config.Get().Timezone)
		if !gotDate.Equal(want) {
			t.Errorf("expected date %v, got %v", want, gotDate)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"title":"Bilet","amount":"3.50","date":"yesterday"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when category belongs to someone else", func(t *testing.T) {
		expSvc := &mockExpenseService{
			createExpenseFn: func(_ uint, _ string, _ int64, _ *uint, _ time.Time, _ string) (*models.Expense, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"title":"Zakupy","amount":"10.00","category_id":42}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestExpenseHandler_GetUserExpenses(t *testing.T) {
	t.Run("passes pagination params", func(t *testing.T) {
		var gotPage pagination.PageRequest
		expSvc := &mockExpenseService{
			getUserExpensesFn: func(_ uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
				gotPage = page
				resp := pagination.NewPageResponse([]models.Expense{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
	})

	t.Run("returns 400 on oversized page_size", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_UpdateExpense(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/7", `{"title":"Poprawiony","amount":"25.00"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for other users expense", func(t *testing.T) {
		expSvc := &mockExpenseService{
			updateExpenseFn: func(_, _ uint, _ string, _ int64, _ *uint, _ time.Time, _ string) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/7", `{"title":"Poprawiony","amount":"25.00"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EXPENSE_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/abc", `{"title":"Poprawiony","amount":"25.00"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 for unknown expense", func(t *testing.T) {
		expSvc := &mockExpenseService{
			deleteExpenseFn: func(_, _ uint) error {
				return apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(expSvc, &mockAuditService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
