package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"budget/internal/money"
	"budget/internal/store"

	"github.com/shopspring/decimal"
)

var ErrSameCurrency = errors.New("source and target currency are identical")

type ReconcileStore interface {
	SelectForCurrencyUpdate(ctx context.Context, userID, currency string, start, end time.Time, limit int) ([]store.CurrencyRow, error)
	UpdateCurrency(ctx context.Context, transactionID, sourceCurrency string, amount decimal.Decimal, targetCurrency string) (int64, error)
}

// CurrencyUpdateRequest describes one reconciliation run: convert every
// transaction of the user still holding SourceCurrency inside the date range
// to TargetCurrency at the caller-supplied rate.
type CurrencyUpdateRequest struct {
	UserID         string
	TargetCurrency string
	SourceCurrency string
	Rate           decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
}

// ReconcileService executes currency reconciliation jobs delivered from the
// queue. Delivery is at-least-once; re-execution is harmless because rows
// already converted no longer match the source-currency predicate.
type ReconcileService struct {
	transactions ReconcileStore
	batchSize    int
}

func NewReconcileService(transactions ReconcileStore, batchSize int) *ReconcileService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &ReconcileService{
		transactions: transactions,
		batchSize:    batchSize,
	}
}

// Execute converts matching transactions page by page. Each row update is a
// standalone statement committed on its own, so a crash mid-run leaves
// already-converted rows final and unprocessed rows still matching the
// predicate for the retry. The page query is simply re-issued until it comes
// back empty: converted rows drop out of the result on their own.
func (s *ReconcileService) Execute(ctx context.Context, req CurrencyUpdateRequest) error {
	if req.SourceCurrency == req.TargetCurrency {
		// Identical currencies would keep matching after conversion and the
		// loop would multiply amounts forever.
		return ErrSameCurrency
	}
	var converted int64
	for {
		rows, err := s.transactions.SelectForCurrencyUpdate(ctx, req.UserID, req.SourceCurrency, req.StartDate, req.EndDate, s.batchSize)
		if err != nil {
			return fmt.Errorf("select transactions for currency update: %w", err)
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			amount := money.Convert(row.Amount, req.Rate)
			affected, err := s.transactions.UpdateCurrency(ctx, row.ID, req.SourceCurrency, amount, req.TargetCurrency)
			if err != nil {
				return fmt.Errorf("update transaction %s: %w", row.ID, err)
			}
			converted += affected
		}
		if len(rows) < s.batchSize {
			break
		}
	}
	log.Printf("currency update for user %s: converted %d transactions from %s to %s",
		req.UserID, converted, req.SourceCurrency, req.TargetCurrency)
	return nil
}
