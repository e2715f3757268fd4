package handlers

import (
	"context"
	"time"

	"budget/internal/amqp"
	"budget/internal/config"
	"budget/internal/models"
	"budget/internal/services"
	"budget/internal/store"
	"budget/internal/websocket"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn     func(ctx context.Context, tx store.Execer, id, email, passwordHash string, birthday *time.Time) error
	getByEmailFn func(ctx context.Context, email string) (models.User, error)
	getByIDFn    func(ctx context.Context, userID string) (models.User, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, email, passwordHash string, birthday *time.Time) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, email, passwordHash, birthday)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.getByEmailFn == nil {
		return models.User{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

type stubSettingsStore struct {
	createFn                func(ctx context.Context, tx store.Execer, userID, defaultCurrency string) error
	getFn                   func(ctx context.Context, userID string) (models.UserSettings, error)
	updateDefaultCurrencyFn func(ctx context.Context, userID, currency string) (int64, error)
}

func (s stubSettingsStore) Create(ctx context.Context, tx store.Execer, userID, defaultCurrency string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, userID, defaultCurrency)
}

func (s stubSettingsStore) Get(ctx context.Context, userID string) (models.UserSettings, error) {
	if s.getFn == nil {
		return models.UserSettings{UserID: userID, DefaultCurrency: "UAH"}, nil
	}
	return s.getFn(ctx, userID)
}

func (s stubSettingsStore) UpdateDefaultCurrency(ctx context.Context, userID, currency string) (int64, error) {
	if s.updateDefaultCurrencyFn == nil {
		return 1, nil
	}
	return s.updateDefaultCurrencyFn(ctx, userID, currency)
}

type stubCategoryStore struct {
	createFn     func(ctx context.Context, tx store.Execer, input store.CategoryInput) error
	updateFn     func(ctx context.Context, categoryID, userID, title string, description *string, categoryType string) (int64, error)
	deleteFn     func(ctx context.Context, categoryID, userID string) (int64, error)
	getByIDFn    func(ctx context.Context, categoryID, userID string) (models.Category, error)
	existsFn     func(ctx context.Context, userID, title, categoryType string) (bool, error)
	existsByIDFn func(ctx context.Context, categoryID, userID string) (bool, error)
	listFn       func(ctx context.Context, userID, typeFilter string, limit, offset int) ([]models.Category, error)
}

func (s stubCategoryStore) Create(ctx context.Context, tx store.Execer, input store.CategoryInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubCategoryStore) Update(ctx context.Context, categoryID, userID, title string, description *string, categoryType string) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, categoryID, userID, title, description, categoryType)
}

func (s stubCategoryStore) Delete(ctx context.Context, categoryID, userID string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, categoryID, userID)
}

func (s stubCategoryStore) GetByID(ctx context.Context, categoryID, userID string) (models.Category, error) {
	if s.getByIDFn == nil {
		return models.Category{ID: categoryID, UserID: userID}, nil
	}
	return s.getByIDFn(ctx, categoryID, userID)
}

func (s stubCategoryStore) Exists(ctx context.Context, userID, title, categoryType string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, userID, title, categoryType)
}

func (s stubCategoryStore) ExistsByID(ctx context.Context, categoryID, userID string) (bool, error) {
	if s.existsByIDFn == nil {
		return true, nil
	}
	return s.existsByIDFn(ctx, categoryID, userID)
}

func (s stubCategoryStore) List(ctx context.Context, userID, typeFilter string, limit, offset int) ([]models.Category, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, userID, typeFilter, limit, offset)
}

type stubTransactionStore struct {
	createFn         func(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	updateFn         func(ctx context.Context, transactionID, userID string, amount decimal.Decimal, date time.Time, note *string) (int64, error)
	deleteFn         func(ctx context.Context, transactionID, userID string) (int64, error)
	getByIDFn        func(ctx context.Context, transactionID, userID string) (models.Transaction, error)
	listByCategoryFn func(ctx context.Context, userID, categoryID string, limit, offset int) ([]store.TransactionWithCategory, error)
}

func (s stubTransactionStore) Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubTransactionStore) Update(ctx context.Context, transactionID, userID string, amount decimal.Decimal, date time.Time, note *string) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, transactionID, userID, amount, date, note)
}

func (s stubTransactionStore) Delete(ctx context.Context, transactionID, userID string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, transactionID, userID)
}

func (s stubTransactionStore) GetByID(ctx context.Context, transactionID, userID string) (models.Transaction, error) {
	if s.getByIDFn == nil {
		return models.Transaction{ID: transactionID, UserID: userID}, nil
	}
	return s.getByIDFn(ctx, transactionID, userID)
}

func (s stubTransactionStore) ListByCategory(ctx context.Context, userID, categoryID string, limit, offset int) ([]store.TransactionWithCategory, error) {
	if s.listByCategoryFn == nil {
		return nil, nil
	}
	return s.listByCategoryFn(ctx, userID, categoryID, limit, offset)
}

type stubAuditStore struct {
	logFn func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, actorID, action, entityType, entityID, data)
}

type stubReportService struct {
	filterTransactionsFn func(ctx context.Context, userID, categoryID, periodToken string, start, end *time.Time, limit, offset int) ([]store.TransactionWithCategory, error)
	filterCategoriesFn   func(ctx context.Context, userID, typeFilter, periodToken string, start, end *time.Time, limit, offset int) ([]services.CategoryWithTransactions, error)
}

func (s stubReportService) FilterTransactions(ctx context.Context, userID, categoryID, periodToken string, start, end *time.Time, limit, offset int) ([]store.TransactionWithCategory, error) {
	if s.filterTransactionsFn == nil {
		return nil, nil
	}
	return s.filterTransactionsFn(ctx, userID, categoryID, periodToken, start, end, limit, offset)
}

func (s stubReportService) FilterCategories(ctx context.Context, userID, typeFilter, periodToken string, start, end *time.Time, limit, offset int) ([]services.CategoryWithTransactions, error) {
	if s.filterCategoriesFn == nil {
		return nil, nil
	}
	return s.filterCategoriesFn(ctx, userID, typeFilter, periodToken, start, end, limit, offset)
}

type stubJobPublisher struct {
	publishFn func(ctx context.Context, msg *amqp.CurrencyUpdateMessage) error
}

func (s stubJobPublisher) PublishCurrencyUpdate(ctx context.Context, msg *amqp.CurrencyUpdateMessage) error {
	if s.publishFn == nil {
		return nil
	}
	return s.publishFn(ctx, msg)
}

func newTestHandler(txRunner fakeTxRunner, users UserStore, settings SettingsStore, categories CategoryStore, transactions TransactionStore, audit AuditStore, reports ReportService, jobs JobPublisher) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		DatabaseURL:    "",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	return New(txRunner, cfg, users, settings, categories, transactions, audit, reports, jobs, websocket.NewHub())
}
