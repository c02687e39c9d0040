package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeshua-high/school-site-api/internal/models"
)

const teacherColumns = "id, name, role, image_url, is_active, created_at, updated_at"

// TeacherRepository manages persistence for staff profiles.
type TeacherRepository struct {
	read  *sqlx.DB
	write *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(read, write *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{read: read, write: write}
}

// List returns teachers newest-first, active-only unless filter.All is set.
func (r *TeacherRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers"
	if !filter.All {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	teachers := []models.Teacher{}
	if err := r.read.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by ID.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.read.GetContext(ctx, &teacher, "SELECT "+teacherColumns+" FROM teachers WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher and fills in the store-assigned fields.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (name, role, image_url, is_active)
VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	row := r.write.QueryRowxContext(ctx, query, teacher.Name, teacher.Role, teacher.ImageURL, teacher.IsActive)
	if err := row.Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update rewrites the teacher row and refreshes updated_at.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET name = $2, role = $3, image_url = $4, is_active = $5, updated_at = NOW()
WHERE id = $1 RETURNING updated_at`
	row := r.write.QueryRowxContext(ctx, query, teacher.ID, teacher.Name, teacher.Role, teacher.ImageURL, teacher.IsActive)
	if err := row.Scan(&teacher.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// Delete removes the row permanently.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
