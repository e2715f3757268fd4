package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"budget/internal/money"
	"budget/internal/services"

	"github.com/shopspring/decimal"
)

var ErrInvalidMessage = errors.New("invalid currency update message")

const dateLayout = "2006-01-02"

// CurrencyUpdateMessage is the queue payload for one reconciliation job.
// The field names are a wire contract shared with other services; do not
// rename them.
type CurrencyUpdateMessage struct {
	CurrencyToUpdate  string `json:"currency_to_update"`
	CurrencyToReplace string `json:"currency_to_replace"`
	CrossCourse       string `json:"cross_course"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	UserID            string `json:"user_id"`
}

func NewCurrencyUpdateMessage(req services.CurrencyUpdateRequest) *CurrencyUpdateMessage {
	return &CurrencyUpdateMessage{
		CurrencyToUpdate:  req.TargetCurrency,
		CurrencyToReplace: req.SourceCurrency,
		CrossCourse:       req.Rate.String(),
		StartDate:         req.StartDate.Format(dateLayout),
		EndDate:           req.EndDate.Format(dateLayout),
		UserID:            req.UserID,
	}
}

// ToRequest validates the wire payload and converts it back into a job
// request. Consumers reject (without requeue) anything that fails here.
func (m *CurrencyUpdateMessage) ToRequest() (services.CurrencyUpdateRequest, error) {
	target, err := money.NormalizeCurrency(m.CurrencyToUpdate)
	if err != nil {
		return services.CurrencyUpdateRequest{}, ErrInvalidMessage
	}
	source, err := money.NormalizeCurrency(m.CurrencyToReplace)
	if err != nil {
		return services.CurrencyUpdateRequest{}, ErrInvalidMessage
	}
	rate, err := decimal.NewFromString(m.CrossCourse)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return services.CurrencyUpdateRequest{}, ErrInvalidMessage
	}
	start, err := time.Parse(dateLayout, m.StartDate)
	if err != nil {
		return services.CurrencyUpdateRequest{}, ErrInvalidMessage
	}
	end, err := time.Parse(dateLayout, m.EndDate)
	if err != nil {
		return services.CurrencyUpdateRequest{}, ErrInvalidMessage
	}
	if m.UserID == "" || start.After(end) {
		return services.CurrencyUpdateRequest{}, ErrInvalidMessage
	}
	return services.CurrencyUpdateRequest{
		UserID:         m.UserID,
		TargetCurrency: target,
		SourceCurrency: source,
		Rate:           rate,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

func (m *CurrencyUpdateMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CurrencyUpdateMessageFromJSON(data []byte) (*CurrencyUpdateMessage, error) {
	var msg CurrencyUpdateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
