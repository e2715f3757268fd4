package store

import (
	"context"

	"budget/internal/models"
)

type SettingsStore struct {
	db DB
}

func NewSettingsStore(db DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Create(ctx context.Context, tx Execer, userID, defaultCurrency string) error {
	query := `
		INSERT INTO user_settings (user_id, default_currency)
		VALUES ($1, $2)
	`
	_, err := tx.ExecContext(ctx, query, userID, defaultCurrency)
	return err
}

func (s *SettingsStore) Get(ctx context.Context, userID string) (models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.GetContext(ctx, &settings, `
		SELECT user_id, default_currency, created_at
		FROM user_settings
		WHERE user_id = $1
	`, userID)
	return settings, err
}

func (s *SettingsStore) UpdateDefaultCurrency(ctx context.Context, userID, currency string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE user_settings SET default_currency = $1 WHERE user_id = $2
	`, currency, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
