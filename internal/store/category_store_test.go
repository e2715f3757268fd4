package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
)

func TestCategoryStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO categories") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 5 || args[0] != "cat-1" || args[4] != "Expense" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewCategoryStore(stubDB{})
	err := store.Create(ctx, execer, CategoryInput{
		ID:     "cat-1",
		UserID: "user-1",
		Title:  "Groceries",
		Type:   "Expense",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCategoryStoreExists(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "user_id = $1 AND title = $2 AND type = $3") {
				t.Fatalf("unexpected predicate: %s", query)
			}
			*dest.(*bool) = true
			return nil
		},
	})
	exists, err := store.Exists(ctx, "user-1", "Groceries", "Expense")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatalf("expected exists")
	}
}

func TestCategoryStoreListAll(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if strings.Contains(query, "AND type") {
				t.Fatalf("type filter should be absent: %s", query)
			}
			if !strings.Contains(query, "ORDER BY created_at ASC, id ASC") {
				t.Fatalf("expected stable ordering: %s", query)
			}
			if len(args) != 3 || args[0] != "user-1" || args[1] != 50 || args[2] != 0 {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.List(ctx, "user-1", "", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCategoryStoreListByType(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		selectFn: func(_ context.Context, _ any, query string, args ...any) error {
			if !strings.Contains(query, "AND type = $2") {
				t.Fatalf("expected type filter: %s", query)
			}
			if len(args) != 4 || args[1] != "Income" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return nil
		},
	})
	if _, err := store.List(ctx, "user-1", "Income", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCategoryStoreDeleteScopedToUser(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "WHERE id = $1 AND user_id = $2") {
				t.Fatalf("delete must be scoped to the user: %s", query)
			}
			return stubResult{rows: 1}, nil
		},
	})
	affected, err := store.Delete(ctx, "cat-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}
}
