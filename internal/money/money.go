package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidRate     = errors.New("invalid rate")
	ErrInvalidCurrency = errors.New("invalid currency")
)

// Recognized currency codes.
var currencies = map[string]struct{}{
	"UAH": {},
	"USD": {},
	"EUR": {},
}

// NormalizeCurrency upper-cases a currency code and rejects codes outside
// the supported set.
func NormalizeCurrency(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := currencies[normalized]; !ok {
		return "", ErrInvalidCurrency
	}
	return normalized, nil
}

// ParseAmount parses a non-negative decimal amount with at most two
// fractional digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// ParseRate parses a strictly positive conversion rate with at most six
// fractional digits.
func ParseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRate
	}
	if rate.Exponent() < -6 {
		return decimal.Zero, ErrInvalidRate
	}
	return rate, nil
}

// Convert applies a conversion rate to an amount, rounded bankers-style to
// two fractional digits.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).RoundBank(2)
}
