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
	"budget/internal/models"
	"budget/internal/store"
)

func TestRegisterCreatesSettingsRow(t *testing.T) {
	var createdUser, createdCurrency string
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{
		createFn: func(_ context.Context, _ store.Execer, id, email, passwordHash string, _ *time.Time) error {
			createdUser = id
			return nil
		},
	}, stubSettingsStore{
		createFn: func(_ context.Context, _ store.Execer, userID, defaultCurrency string) error {
			if userID != createdUser {
				t.Fatalf("settings created for %q, user row was %q", userID, createdUser)
			}
			createdCurrency = defaultCurrency
			return nil
		},
	}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"email":"alice@example.com","password":"s3cretpass","password_confirm":"s3cretpass","default_currency":"eur"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if createdCurrency != "EUR" {
		t.Fatalf("expected normalized EUR default currency, got %q", createdCurrency)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["token"] == "" {
		t.Fatal("expected a token in the response")
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{
		createFn: func(context.Context, store.Execer, string, string, string, *time.Time) error {
			t.Fatal("user must not be created on validation failure")
			return nil
		},
	}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"email":"alice@example.com","password":"s3cretpass","password_confirm":"different1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"email":"not-an-email","password":"s3cretpass","password_confirm":"s3cretpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Register(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	hash, err := auth.HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{
		getByEmailFn: func(context.Context, string) (models.User, error) {
			return models.User{ID: "user-1", Email: "alice@example.com", PasswordHash: hash, IsActive: false}, nil
		},
	}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"email":"alice@example.com","password":"s3cretpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestLoginReturnsToken(t *testing.T) {
	hash, err := auth.HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	handler := newTestHandler(fakeTxRunner{}, stubUserStore{
		getByEmailFn: func(context.Context, string) (models.User, error) {
			return models.User{ID: "user-1", Email: "alice@example.com", PasswordHash: hash, IsActive: true}, nil
		},
	}, stubSettingsStore{}, stubCategoryStore{}, stubTransactionStore{}, stubAuditStore{}, stubReportService{}, stubJobPublisher{})

	body := `{"email":"alice@example.com","password":"s3cretpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Login(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	claims, err := auth.ParseToken("secret", payload["token"])
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected subject %q", claims.UserID)
	}
}
