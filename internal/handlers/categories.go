package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"budget/internal/middleware"
	"budget/internal/models"
	"budget/internal/period"
	"budget/internal/store"
	"budget/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type categoryRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type"`
}

func (c categoryRequest) validate() error {
	if err := validator.ValidateTitle(c.Title); err != nil {
		return err
	}
	return validator.ValidateCategoryType(c.Type)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	exists, err := h.categories.Exists(r.Context(), userID, req.Title, req.Type)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	if exists {
		respondError(w, http.StatusBadRequest, "you have already created such category")
		return
	}
	categoryID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.categories.Create(r.Context(), tx, store.CategoryInput{
			ID:          categoryID,
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			Type:        req.Type,
		})
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	category, err := h.categories.GetByID(r.Context(), categoryID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	affected, err := h.categories.Update(r.Context(), categoryID, userID, req.Title, req.Description, req.Type)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	category, err := h.categories.GetByID(r.Context(), categoryID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	affected, err := h.categories.Delete(r.Context(), categoryID, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "categoryID")
	category, err := h.categories.GetByID(r.Context(), categoryID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, "")
}

func (h *Handler) ListExpenseCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, models.CategoryTypeExpense)
}

func (h *Handler) ListIncomeCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, models.CategoryTypeIncome)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request, typeFilter string) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit, offset := parsePagination(r)
	categories, err := h.categories.List(r.Context(), userID, typeFilter, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) FilterCategories(w http.ResponseWriter, r *http.Request) {
	h.filterCategories(w, r, "")
}

func (h *Handler) FilterExpenseCategories(w http.ResponseWriter, r *http.Request) {
	h.filterCategories(w, r, models.CategoryTypeExpense)
}

func (h *Handler) FilterIncomeCategories(w http.ResponseWriter, r *http.Request) {
	h.filterCategories(w, r, models.CategoryTypeIncome)
}

// filterCategories answers the windowed category aggregate: every category
// of the requested type, each with only its in-window transactions.
func (h *Handler) filterCategories(w http.ResponseWriter, r *http.Request, typeFilter string) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
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
	result, err := h.reports.FilterCategories(r.Context(), userID, typeFilter, query.Get("search_type"), start, end, limit, offset)
	if err != nil {
		if errors.Is(err, period.ErrInvalidFilter) {
			respondError(w, http.StatusBadRequest, "wrong filter")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
