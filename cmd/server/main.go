package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budget/internal/amqp"
	"budget/internal/config"
	"budget/internal/db"
	"budget/internal/handlers"
	"budget/internal/services"
	"budget/internal/store"
	"budget/internal/websocket"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	jobs, err := amqp.NewClient(cfg.AMQPURL, cfg.JobExchange, cfg.JobQueue)
	if err != nil {
		log.Fatalf("failed to connect AMQP: %v", err)
	}
	defer jobs.Close()

	users := store.NewUserStore(database)
	settings := store.NewSettingsStore(database)
	categories := store.NewCategoryStore(database)
	transactions := store.NewTransactionStore(database)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()
	reports := services.NewReportService(categories, transactions, nil)

	handler := handlers.New(txRunner, cfg, users, settings, categories, transactions, audit, reports, jobs, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("budget API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
