package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeCurrency(t *testing.T) {
	for raw, want := range map[string]string{"uah": "UAH", " usd ": "USD", "EUR": "EUR"} {
		got, err := NormalizeCurrency(raw)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", raw, want, got)
		}
	}
	for _, raw := range []string{"", "GBP", "US"} {
		if _, err := NormalizeCurrency(raw); err != ErrInvalidCurrency {
			t.Fatalf("%q: expected ErrInvalidCurrency, got %v", raw, err)
		}
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("100.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !amount.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("unexpected amount: %s", amount)
	}
	for _, raw := range []string{"", "abc", "-1", "1.005"} {
		if _, err := ParseAmount(raw); err != ErrInvalidAmount {
			t.Fatalf("%q: expected ErrInvalidAmount, got %v", raw, err)
		}
	}
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate("38.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("38.5")) {
		t.Fatalf("unexpected rate: %s", rate)
	}
	for _, raw := range []string{"", "0", "-2", "0.0000001"} {
		if _, err := ParseRate(raw); err != ErrInvalidRate {
			t.Fatalf("%q: expected ErrInvalidRate, got %v", raw, err)
		}
	}
}

func TestConvert(t *testing.T) {
	amount := decimal.RequireFromString("100")
	rate := decimal.RequireFromString("38.5")
	if got := Convert(amount, rate); !got.Equal(decimal.RequireFromString("3850")) {
		t.Fatalf("expected 3850, got %s", got)
	}
}
