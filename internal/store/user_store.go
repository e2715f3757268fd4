package store

import (
	"context"
	"time"

	"budget/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, email, passwordHash string, birthday *time.Time) error {
	query := `
		INSERT INTO users (id, email, password_hash, is_active, birthday)
		VALUES ($1, $2, $3, TRUE, $4)
	`
	_, err := tx.ExecContext(ctx, query, id, email, passwordHash, birthday)
	return err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, is_active, birthday, created_at
		FROM users
		WHERE email = $1
	`, email)
	return user, err
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, is_active, birthday, created_at
		FROM users
		WHERE id = $1
	`, userID)
	return user, err
}
