package handlers

import (
	"context"
	"time"

	"budget/internal/amqp"
	"budget/internal/models"
	"budget/internal/services"
	"budget/internal/store"

	"github.com/shopspring/decimal"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, email, passwordHash string, birthday *time.Time) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type SettingsStore interface {
	Create(ctx context.Context, tx store.Execer, userID, defaultCurrency string) error
	Get(ctx context.Context, userID string) (models.UserSettings, error)
	UpdateDefaultCurrency(ctx context.Context, userID, currency string) (int64, error)
}

type CategoryStore interface {
	Create(ctx context.Context, tx store.Execer, input store.CategoryInput) error
	Update(ctx context.Context, categoryID, userID, title string, description *string, categoryType string) (int64, error)
	Delete(ctx context.Context, categoryID, userID string) (int64, error)
	GetByID(ctx context.Context, categoryID, userID string) (models.Category, error)
	Exists(ctx context.Context, userID, title, categoryType string) (bool, error)
	ExistsByID(ctx context.Context, categoryID, userID string) (bool, error)
	List(ctx context.Context, userID, typeFilter string, limit, offset int) ([]models.Category, error)
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	Update(ctx context.Context, transactionID, userID string, amount decimal.Decimal, date time.Time, note *string) (int64, error)
	Delete(ctx context.Context, transactionID, userID string) (int64, error)
	GetByID(ctx context.Context, transactionID, userID string) (models.Transaction, error)
	ListByCategory(ctx context.Context, userID, categoryID string, limit, offset int) ([]store.TransactionWithCategory, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

type ReportService interface {
	FilterTransactions(ctx context.Context, userID, categoryID, periodToken string, start, end *time.Time, limit, offset int) ([]store.TransactionWithCategory, error)
	FilterCategories(ctx context.Context, userID, typeFilter, periodToken string, start, end *time.Time, limit, offset int) ([]services.CategoryWithTransactions, error)
}

type JobPublisher interface {
	PublishCurrencyUpdate(ctx context.Context, msg *amqp.CurrencyUpdateMessage) error
}
