package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budget/internal/auth"
	"budget/internal/middleware"
	"budget/internal/models"
	"budget/internal/period"
	"budget/internal/services"
	"budget/internal/store"

	"github.com/go-chi/chi/v5"
)

func withURLParam(handler http.HandlerFunc, key, value string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add(key, value)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
		handler(w, r)
	}
}

func serveAuthed(t *testing.T, handler http.HandlerFunc, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := auth.GenerateToken("secret", userID, time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	middleware.Auth("secret")(handler).ServeHTTP(rr, req)
	return rr
}

func TestCreateCategoryRejectsDuplicate(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{
		existsFn: func(_ context.Context, userID, title, categoryType string) (bool, error) {
			return title == "Food" && categoryType == models.CategoryTypeExpense, nil
		},
		createFn: func(context.Context, store.Execer, store.CategoryInput) error {
			t.Fatal("duplicate category must not be created")
			return nil
		},
	}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"title":"Food","type":"Expense"}`
	rr := serveAuthed(t, handler.CreateCategory, http.MethodPost, "/categories", body, "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["error"] != "you have already created such category" {
		t.Fatalf("unexpected error message %q", payload["error"])
	}
}

func TestCreateCategoryRejectsUnknownType(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"title":"Food","type":"Savings"}`
	rr := serveAuthed(t, handler.CreateCategory, http.MethodPost, "/categories", body, "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListExpenseCategoriesPassesTypeFilter(t *testing.T) {
	var gotFilter string
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{
		listFn: func(_ context.Context, _ string, typeFilter string, _, _ int) ([]models.Category, error) {
			gotFilter = typeFilter
			return []models.Category{{ID: "cat-1", Title: "Food", Type: models.CategoryTypeExpense}}, nil
		},
	}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	rr := serveAuthed(t, handler.ListExpenseCategories, http.MethodGet, "/categories/expense", "", "user-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotFilter != models.CategoryTypeExpense {
		t.Fatalf("expected Expense filter, got %q", gotFilter)
	}
}

func TestFilterCategoriesWrongToken(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{
		filterCategoriesFn: func(context.Context, string, string, string, *time.Time, *time.Time, int, int) ([]services.CategoryWithTransactions, error) {
			return nil, period.ErrInvalidFilter
		},
	}, stubJobPublisher{})

	rr := serveAuthed(t, handler.FilterCategories, http.MethodGet, "/categories/filter?search_type=decade", "", "user-1")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["error"] != "wrong filter" {
		t.Fatalf("unexpected error message %q", payload["error"])
	}
}

func TestFilterCategoriesForwardsBounds(t *testing.T) {
	var gotToken string
	var gotStart, gotEnd *time.Time
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{
		filterCategoriesFn: func(_ context.Context, _ string, _ string, periodToken string, start, end *time.Time, _, _ int) ([]services.CategoryWithTransactions, error) {
			gotToken = periodToken
			gotStart = start
			gotEnd = end
			return []services.CategoryWithTransactions{}, nil
		},
	}, stubJobPublisher{})

	rr := serveAuthed(t, handler.FilterCategories, http.MethodGet, "/categories/filter?search_type=interval&start_date=2024-01-01&end_date=2024-01-31", "", "user-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotToken != "interval" {
		t.Fatalf("expected token forwarded verbatim, got %q", gotToken)
	}
	if gotStart == nil || gotStart.Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("unexpected start bound %v", gotStart)
	}
	if gotEnd == nil || gotEnd.Format("2006-01-02") != "2024-01-31" {
		t.Fatalf("unexpected end bound %v", gotEnd)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{
		deleteFn: func(context.Context, string, string) (int64, error) { return 0, nil },
	}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	rr := serveAuthed(t, withURLParam(handler.DeleteCategory, "categoryID", "cat-unknown"), http.MethodDelete, "/categories/cat-unknown", "", "user-1")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
