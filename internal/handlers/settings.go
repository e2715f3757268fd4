package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"budget/internal/middleware"
	"budget/internal/money"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	settings, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "settings not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

type updateSettingsRequest struct {
	DefaultCurrency string `json:"default_currency"`
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	currency, err := money.NormalizeCurrency(req.DefaultCurrency)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	affected, err := h.settings.UpdateDefaultCurrency(r.Context(), userID, currency)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	if affected == 0 {
		respondError(w, http.StatusNotFound, "settings not found")
		return
	}
	settings, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
