package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeshua-high/school-site-api/internal/models"
)

const awardColumns = "id, title, description, category, image_url, award_date, is_active, created_at, updated_at"

// AwardRepository manages persistence for awards.
type AwardRepository struct {
	read  *sqlx.DB
	write *sqlx.DB
}

// NewAwardRepository constructs an AwardRepository.
func NewAwardRepository(read, write *sqlx.DB) *AwardRepository {
	return &AwardRepository{read: read, write: write}
}

// List returns awards newest-first, active-only unless filter.All is set.
func (r *AwardRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Award, error) {
	query := "SELECT " + awardColumns + " FROM awards"
	if !filter.All {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	awards := []models.Award{}
	if err := r.read.SelectContext(ctx, &awards, query); err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}

// FindByID fetches an award by ID.
func (r *AwardRepository) FindByID(ctx context.Context, id int64) (*models.Award, error) {
	var award models.Award
	if err := r.read.GetContext(ctx, &award, "SELECT "+awardColumns+" FROM awards WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &award, nil
}

// Create inserts a new award and fills in the store-assigned fields.
func (r *AwardRepository) Create(ctx context.Context, award *models.Award) error {
	const query = `INSERT INTO awards (title, description, category, image_url, award_date, is_active)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	row := r.write.QueryRowxContext(ctx, query,
		award.Title, award.Description, award.Category, award.ImageURL, award.AwardDate, award.IsActive)
	if err := row.Scan(&award.ID, &award.CreatedAt, &award.UpdatedAt); err != nil {
		return fmt.Errorf("create award: %w", err)
	}
	return nil
}

// Update rewrites the award row and refreshes updated_at.
func (r *AwardRepository) Update(ctx context.Context, award *models.Award) error {
	const query = `UPDATE awards SET title = $2, description = $3, category = $4, image_url = $5,
award_date = $6, is_active = $7, updated_at = NOW() WHERE id = $1 RETURNING updated_at`
	row := r.write.QueryRowxContext(ctx, query,
		award.ID, award.Title, award.Description, award.Category, award.ImageURL, award.AwardDate, award.IsActive)
	if err := row.Scan(&award.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// Delete removes the row permanently.
func (r *AwardRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, "DELETE FROM awards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete award: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete award: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
