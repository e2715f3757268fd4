package store

import (
	"context"

	"budget/internal/models"
)

type CategoryStore struct {
	db DB
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

type CategoryInput struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Type        string
}

func (s *CategoryStore) Create(ctx context.Context, tx Execer, input CategoryInput) error {
	query := `
		INSERT INTO categories (id, user_id, title, description, type)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, input.ID, input.UserID, input.Title, input.Description, input.Type)
	return err
}

func (s *CategoryStore) Update(ctx context.Context, categoryID, userID, title string, description *string, categoryType string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET title = $1, description = $2, type = $3
		WHERE id = $4 AND user_id = $5
	`, title, description, categoryType, categoryID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *CategoryStore) Delete(ctx context.Context, categoryID, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *CategoryStore) GetByID(ctx context.Context, categoryID, userID string) (models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, `
		SELECT id, user_id, title, description, type, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	return category, err
}

// Exists reports whether the user already owns a category with the same
// title and type.
func (s *CategoryStore) Exists(ctx context.Context, userID, title, categoryType string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM categories WHERE user_id = $1 AND title = $2 AND type = $3
		)
	`, userID, title, categoryType)
	return exists, err
}

// ExistsByID reports whether the category exists and belongs to the user.
func (s *CategoryStore) ExistsByID(ctx context.Context, categoryID, userID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM categories WHERE id = $1 AND user_id = $2
		)
	`, categoryID, userID)
	return exists, err
}

// List returns the user's categories, optionally restricted to one type.
// Ordering is stable (created_at ASC, id ASC) so limit/offset pagination
// stays consistent across calls.
func (s *CategoryStore) List(ctx context.Context, userID, typeFilter string, limit, offset int) ([]models.Category, error) {
	query := `
		SELECT id, user_id, title, description, type, created_at
		FROM categories
		WHERE user_id = $1
	`
	args := []any{userID}
	if typeFilter != "" {
		query += ` AND type = $2 ORDER BY created_at ASC, id ASC LIMIT $3 OFFSET $4`
		args = append(args, typeFilter, limit, offset)
	} else {
		query += ` ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, query, args...)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
