package services

import (
	"context"
	"errors"
	"time"

	"budget/internal/models"
	"budget/internal/period"
	"budget/internal/store"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryReader interface {
	ExistsByID(ctx context.Context, categoryID, userID string) (bool, error)
	List(ctx context.Context, userID, typeFilter string, limit, offset int) ([]models.Category, error)
}

type TransactionReader interface {
	ListFiltered(ctx context.Context, userID, categoryID string, window period.Window, limit, offset int) ([]store.TransactionWithCategory, error)
	ListByCategoryIDs(ctx context.Context, userID string, categoryIDs []string, window period.Window) ([]models.Transaction, error)
}

// ReportService answers the windowed filter queries. The clock is injected
// so period resolution is deterministic under test.
type ReportService struct {
	categories   CategoryReader
	transactions TransactionReader
	now          func() time.Time
}

func NewReportService(categories CategoryReader, transactions TransactionReader, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		categories:   categories,
		transactions: transactions,
		now:          now,
	}
}

// FilterTransactions returns the user's transactions under one category
// inside the resolved window. The window is validated before any query runs,
// and category ownership is checked before the transaction query.
func (s *ReportService) FilterTransactions(ctx context.Context, userID, categoryID, periodToken string, start, end *time.Time, limit, offset int) ([]store.TransactionWithCategory, error) {
	window, err := period.Resolve(periodToken, start, end, s.now())
	if err != nil {
		return nil, err
	}
	owned, err := s.categories.ExistsByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrCategoryNotFound
	}
	return s.transactions.ListFiltered(ctx, userID, categoryID, window, limit, offset)
}

type CategoryWithTransactions struct {
	models.Category
	Transactions []models.Transaction `json:"transactions"`
}

// FilterCategories returns the user's categories, each carrying only its
// transactions inside the window. Two queries total: one for the categories
// and one batched load keyed by category id. Categories without matching
// transactions are kept with an empty subset.
func (s *ReportService) FilterCategories(ctx context.Context, userID, typeFilter, periodToken string, start, end *time.Time, limit, offset int) ([]CategoryWithTransactions, error) {
	window, err := period.Resolve(periodToken, start, end, s.now())
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx, userID, typeFilter, limit, offset)
	if err != nil {
		return nil, err
	}
	categoryIDs := make([]string, 0, len(categories))
	for _, category := range categories {
		categoryIDs = append(categoryIDs, category.ID)
	}
	transactions, err := s.transactions.ListByCategoryIDs(ctx, userID, categoryIDs, window)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]models.Transaction, len(categories))
	for _, transaction := range transactions {
		byCategory[transaction.CategoryID] = append(byCategory[transaction.CategoryID], transaction)
	}
	result := make([]CategoryWithTransactions, 0, len(categories))
	for _, category := range categories {
		attached := byCategory[category.ID]
		if attached == nil {
			attached = []models.Transaction{}
		}
		result = append(result, CategoryWithTransactions{
			Category:     category,
			Transactions: attached,
		})
	}
	return result, nil
}
