package handlers

import (
	"net/http"

	"budget/internal/config"
	"budget/internal/db"
	"budget/internal/middleware"
	"budget/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner     db.TxRunner
	cfg          config.Config
	users        UserStore
	settings     SettingsStore
	categories   CategoryStore
	transactions TransactionStore
	audit        AuditStore
	reports      ReportService
	jobs         JobPublisher
	hub          *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, settings SettingsStore, categories CategoryStore, transactions TransactionStore, audit AuditStore, reports ReportService, jobs JobPublisher, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:     txRunner,
		cfg:          cfg,
		users:        users,
		settings:     settings,
		categories:   categories,
		transactions: transactions,
		audit:        audit,
		reports:      reports,
		jobs:         jobs,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})
	router.Route("/categories", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Post("/", h.CreateCategory)
		r.Get("/", h.ListCategories)
		r.Get("/expense", h.ListExpenseCategories)
		r.Get("/income", h.ListIncomeCategories)
		r.Get("/filter", h.FilterCategories)
		r.Get("/expense/filter", h.FilterExpenseCategories)
		r.Get("/income/filter", h.FilterIncomeCategories)
		r.Get("/{categoryID}", h.GetCategory)
		r.Put("/{categoryID}", h.UpdateCategory)
		r.Delete("/{categoryID}", h.DeleteCategory)
	})
	router.Route("/transactions", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Patch("/currency", h.UpdateTransactionsCurrency)
		r.Post("/{categoryID}", h.CreateTransaction)
		r.Get("/category/{categoryID}", h.ListTransactionsByCategory)
		r.Get("/category/{categoryID}/filter", h.FilterTransactions)
		r.Get("/{transactionID}", h.GetTransaction)
		r.Put("/{transactionID}", h.UpdateTransaction)
		r.Delete("/{transactionID}", h.DeleteTransaction)
	})
	router.Route("/settings", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.GetSettings)
		r.Put("/", h.UpdateSettings)
	})
	router.Get("/ws/transactions", h.WSTransactions)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
