package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"budget/internal/amqp"
	"budget/internal/middleware"
	"budget/internal/money"
	"budget/internal/period"
	"budget/internal/services"
	"budget/internal/store"
	"budget/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type transactionRequest struct {
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
	Note   *string     `json:"note,omitempty"`
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	owned, err := h.categories.ExistsByID(r.Context(), categoryID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}
	if !owned {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseAmount(req.Amount.String())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date")
		return
	}
	settings, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}
	transactionID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.transactions.Create(r.Context(), tx, store.TransactionInput{
			ID:         transactionID,
			UserID:     userID,
			CategoryID: categoryID,
			Amount:     amount,
			Currency:   settings.DefaultCurrency,
			Date:       date,
			Note:       req.Note,
		})
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}
	transaction, err := h.transactions.GetByID(r.Context(), transactionID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	h.hub.BroadcastTransaction(userID, websocket.TransactionUpdate{
		TransactionID: transaction.ID,
		CategoryID:    transaction.CategoryID,
		Action:        "created",
		Amount:        transaction.Amount.String(),
		Currency:      transaction.Currency,
	})
	respondJSON(w, http.StatusCreated, transaction)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactionID := chi.URLParam(r, "transactionID")
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseAmount(req.Amount.String())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date")
		return
	}
	affected, err := h.transactions.Update(r.Context(), transactionID, userID, amount, date, req.Note)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	transaction, err := h.transactions.GetByID(r.Context(), transactionID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	h.hub.BroadcastTransaction(userID, websocket.TransactionUpdate{
		TransactionID: transaction.ID,
		CategoryID:    transaction.CategoryID,
		Action:        "updated",
		Amount:        transaction.Amount.String(),
		Currency:      transaction.Currency,
	})
	respondJSON(w, http.StatusOK, transaction)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactionID := chi.URLParam(r, "transactionID")
	transaction, err := h.transactions.GetByID(r.Context(), transactionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	affected, err := h.transactions.Delete(r.Context(), transactionID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	h.hub.BroadcastTransaction(userID, websocket.TransactionUpdate{
		TransactionID: transaction.ID,
		CategoryID:    transaction.CategoryID,
		Action:        "deleted",
		Amount:        transaction.Amount.String(),
		Currency:      transaction.Currency,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactionID := chi.URLParam(r, "transactionID")
	transaction, err := h.transactions.GetByID(r.Context(), transactionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "transaction not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	respondJSON(w, http.StatusOK, transaction)
}

func (h *Handler) ListTransactionsByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	owned, err := h.categories.ExistsByID(r.Context(), categoryID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	if !owned {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	limit, offset := parsePagination(r)
	transactions, err := h.transactions.ListByCategory(r.Context(), userID, categoryID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) FilterTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	query := r.URL.Query()
	start, err := parseOptionalDate(query.Get("start_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "wrong filter")
		return
	}
	end, err := parseOptionalDate(query.Get("end_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "wrong filter")
		return
	}
	limit, offset := parsePagination(r)
	transactions, err := h.reports.FilterTransactions(r.Context(), userID, categoryID, query.Get("search_type"), start, end, limit, offset)
	if err != nil {
		if errors.Is(err, period.ErrInvalidFilter) {
			respondError(w, http.StatusBadRequest, "wrong filter")
			return
		}
		if errors.Is(err, services.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

type currencyUpdateRequest struct {
	CurrencyToUpdate  string      `json:"currency_to_update"`
	CurrencyToReplace string      `json:"currency_to_replace"`
	CrossCourse       json.Number `json:"cross_course"`
	StartDate         string      `json:"start_date"`
	EndDate           string      `json:"end_date"`
}

// UpdateTransactionsCurrency enqueues a reconciliation job instead of
// rewriting rows inline. The response only acknowledges acceptance.
func (h *Handler) UpdateTransactionsCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req currencyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	target, err := money.NormalizeCurrency(req.CurrencyToUpdate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	source, err := money.NormalizeCurrency(req.CurrencyToReplace)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if source == target {
		respondError(w, http.StatusBadRequest, "currencies must differ")
		return
	}
	rate, err := money.ParseRate(req.CrossCourse.String())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date")
		return
	}
	if start.After(end) {
		respondError(w, http.StatusBadRequest, "wrong filter")
		return
	}
	msg := amqp.NewCurrencyUpdateMessage(services.CurrencyUpdateRequest{
		UserID:         userID,
		TargetCurrency: target,
		SourceCurrency: source,
		Rate:           rate,
		StartDate:      start,
		EndDate:        end,
	})
	if err := h.jobs.PublishCurrencyUpdate(r.Context(), msg); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to enqueue currency update")
		return
	}
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.audit.Log(r.Context(), tx, userID, "currency_update", "transaction", "", source+"->"+target)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record currency update")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":     "accepted",
		"start_date": start.Format(dateLayout),
		"end_date":   end.Format(dateLayout),
	})
}
