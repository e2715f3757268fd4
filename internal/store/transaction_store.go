package store

import (
	"context"
	"time"

	"budget/internal/models"
	"budget/internal/period"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID         string
	UserID     string
	CategoryID string
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time
	Note       *string
}

// TransactionWithCategory is a transaction row joined with its owning
// category, for display. A single-level join only.
type TransactionWithCategory struct {
	models.Transaction
	CategoryTitle string `db:"category_title" json:"category_title"`
	CategoryType  string `db:"category_type" json:"category_type"`
}

const transactionColumns = `
	t.id, t.user_id, t.category_id, t.amount, t.currency, t.date, t.note, t.created_at,
	c.title AS category_title, c.type AS category_type
`

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, amount, currency, date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.UserID, input.CategoryID, input.Amount, input.Currency, input.Date, input.Note,
	)
	return err
}

func (s *TransactionStore) Update(ctx context.Context, transactionID, userID string, amount decimal.Decimal, date time.Time, note *string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = $1, date = $2, note = $3
		WHERE id = $4 AND user_id = $5
	`, amount, date, note, transactionID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *TransactionStore) Delete(ctx context.Context, transactionID, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, transactionID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *TransactionStore) GetByID(ctx context.Context, transactionID, userID string) (models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.GetContext(ctx, &transaction, `
		SELECT id, user_id, category_id, amount, currency, date, note, created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, transactionID, userID)
	return transaction, err
}

// ListByCategory returns the user's transactions under one category,
// newest first (date DESC, id DESC keeps pagination stable).
func (s *TransactionStore) ListByCategory(ctx context.Context, userID, categoryID string, limit, offset int) ([]TransactionWithCategory, error) {
	transactions := []TransactionWithCategory{}
	err := s.db.SelectContext(ctx, &transactions, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.category_id = $2
		ORDER BY t.date DESC, t.id DESC
		LIMIT $3 OFFSET $4
	`, userID, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListFiltered returns the user's transactions under one category whose date
// falls inside the window, bounds inclusive.
func (s *TransactionStore) ListFiltered(ctx context.Context, userID, categoryID string, window period.Window, limit, offset int) ([]TransactionWithCategory, error) {
	transactions := []TransactionWithCategory{}
	err := s.db.SelectContext(ctx, &transactions, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.category_id = $2 AND t.date BETWEEN $3 AND $4
		ORDER BY t.date DESC, t.id DESC
		LIMIT $5 OFFSET $6
	`, userID, categoryID, window.Start, window.End, limit, offset)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListByCategoryIDs batch-loads the windowed transactions for a set of
// categories in one query. Filtering by user_id as well as category ids
// keeps forged category ids from leaking another user's rows.
func (s *TransactionStore) ListByCategoryIDs(ctx context.Context, userID string, categoryIDs []string, window period.Window) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if len(categoryIDs) == 0 {
		return transactions, nil
	}
	err := s.db.SelectContext(ctx, &transactions, `
		SELECT id, user_id, category_id, amount, currency, date, note, created_at
		FROM transactions
		WHERE user_id = $1 AND category_id = ANY($2) AND date BETWEEN $3 AND $4
		ORDER BY date DESC, id DESC
	`, userID, pq.Array(categoryIDs), window.Start, window.End)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// CurrencyRow is the slice of a transaction the reconciliation job needs.
type CurrencyRow struct {
	ID     string          `db:"id"`
	Amount decimal.Decimal `db:"amount"`
}

// SelectForCurrencyUpdate returns up to limit rows still holding the source
// currency inside the date range. Converted rows stop matching, so the same
// page query can be re-issued until it comes back empty.
func (s *TransactionStore) SelectForCurrencyUpdate(ctx context.Context, userID, currency string, start, end time.Time, limit int) ([]CurrencyRow, error) {
	rows := []CurrencyRow{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount
		FROM transactions
		WHERE user_id = $1 AND currency = $2 AND date BETWEEN $3 AND $4
		ORDER BY date ASC, id ASC
		LIMIT $5
	`, userID, currency, start, end, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateCurrency rewrites one row's amount and currency. The currency
// predicate repeats the source currency so a row converted by an earlier
// delivery of the same job is skipped, not converted twice.
func (s *TransactionStore) UpdateCurrency(ctx context.Context, transactionID, sourceCurrency string, amount decimal.Decimal, targetCurrency string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = $1, currency = $2
		WHERE id = $3 AND currency = $4
	`, amount, targetCurrency, transactionID, sourceCurrency)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
