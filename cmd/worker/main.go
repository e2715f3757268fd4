package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"budget/internal/amqp"
	"budget/internal/config"
	"budget/internal/db"
	"budget/internal/services"
	"budget/internal/store"

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

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.JobExchange, cfg.JobQueue)
	if err != nil {
		log.Fatalf("failed to connect AMQP: %v", err)
	}
	defer client.Close()

	transactions := store.NewTransactionStore(database)
	reconciler := services.NewReconcileService(transactions, cfg.JobBatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("currency worker started (batch size %d)", cfg.JobBatchSize)
	err = client.ConsumeCurrencyUpdates(ctx, func(ctx context.Context, msg *amqp.CurrencyUpdateMessage) error {
		req, err := msg.ToRequest()
		if err != nil {
			// A payload that decodes but fails validation can never
			// succeed, so it is acked rather than requeued forever.
			log.Printf("discarding invalid currency update for user %s: %v", msg.UserID, err)
			return nil
		}
		if err := reconciler.Execute(ctx, req); err != nil {
			if errors.Is(err, services.ErrSameCurrency) {
				log.Printf("discarding same-currency update for user %s", req.UserID)
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer stopped: %v", err)
	}
}
