package handlers

import (
	"net/http"

	"budget/internal/auth"
	"budget/internal/websocket"
)

// WSTransactions upgrades the connection and streams transaction updates to
// the authenticated user. Browsers cannot set headers on WebSocket
// handshakes, so the token rides in a query parameter.
func (h *Handler) WSTransactions(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}
