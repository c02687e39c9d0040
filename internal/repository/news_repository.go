package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeshua-high/school-site-api/internal/models"
)

// NewsRepository manages persistence for news ticker messages. Reads go
// through the unprivileged pool; every mutation uses the privileged writer.
type NewsRepository struct {
	read  *sqlx.DB
	write *sqlx.DB
}

// NewNewsRepository constructs a NewsRepository.
func NewNewsRepository(read, write *sqlx.DB) *NewsRepository {
	return &NewsRepository{read: read, write: write}
}

// List returns messages newest-first, active-only unless filter.All is set.
func (r *NewsRepository) List(ctx context.Context, filter models.ListFilter) ([]models.NewsMessage, error) {
	query := "SELECT id, message, is_active, created_at, updated_at FROM news_ticker"
	if !filter.All {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	messages := []models.NewsMessage{}
	if err := r.read.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("list news messages: %w", err)
	}
	return messages, nil
}

// FindByID fetches a message by ID.
func (r *NewsRepository) FindByID(ctx context.Context, id int64) (*models.NewsMessage, error) {
	const query = `SELECT id, message, is_active, created_at, updated_at FROM news_ticker WHERE id = $1`
	var message models.NewsMessage
	if err := r.read.GetContext(ctx, &message, query, id); err != nil {
		return nil, err
	}
	return &message, nil
}

// Create inserts a new message and fills in the store-assigned fields.
func (r *NewsRepository) Create(ctx context.Context, message *models.NewsMessage) error {
	const query = `INSERT INTO news_ticker (message, is_active) VALUES ($1, $2) RETURNING id, created_at, updated_at`
	row := r.write.QueryRowxContext(ctx, query, message.Message, message.IsActive)
	if err := row.Scan(&message.ID, &message.CreatedAt, &message.UpdatedAt); err != nil {
		return fmt.Errorf("create news message: %w", err)
	}
	return nil
}

// Update rewrites the message row and refreshes updated_at.
func (r *NewsRepository) Update(ctx context.Context, message *models.NewsMessage) error {
	const query = `UPDATE news_ticker SET message = $2, is_active = $3, updated_at = NOW() WHERE id = $1 RETURNING updated_at`
	row := r.write.QueryRowxContext(ctx, query, message.ID, message.Message, message.IsActive)
	if err := row.Scan(&message.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// Delete removes the row permanently. A missing id surfaces as sql.ErrNoRows.
func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, "DELETE FROM news_ticker WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete news message: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete news message: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
