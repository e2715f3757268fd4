package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"budget/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO users") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 || args[0] != "user-1" || args[1] != "user@example.com" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewUserStore(stubDB{})
	if err := store.Create(ctx, execer, "user-1", "user@example.com", "hash", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreGetByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE email = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*models.User) = models.User{ID: "user-1", Email: "user@example.com"}
			return nil
		},
	})
	user, err := store.GetByEmail(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user: %#v", user)
	}
}
