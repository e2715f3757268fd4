package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryTypeIncome  = "Income"
	CategoryTypeExpense = "Expense"
)

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	Birthday     *time.Time `db:"birthday" json:"birthday,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type UserSettings struct {
	UserID          string    `db:"user_id" json:"user_id"`
	DefaultCurrency string    `db:"default_currency" json:"default_currency"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Category struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Type        string    `db:"type" json:"type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Transaction struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"user_id"`
	CategoryID string          `db:"category_id" json:"category_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Currency   string          `db:"currency" json:"currency"`
	Date       time.Time       `db:"date" json:"date"`
	Note       *string         `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
