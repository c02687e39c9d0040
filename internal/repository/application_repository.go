package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/yeshua-high/school-site-api/internal/models"
)

const applicationColumns = `id, reference_code, student_first_name, student_last_name, student_middle_name,
date_of_birth, gender, grade_applying_for, previous_school,
parent_first_name, parent_last_name, relationship, parent_email, parent_phone, alternate_phone,
home_address, city, state, how_did_you_hear, special_needs, additional_comments,
status, created_at, updated_at`

// ApplicationRepository manages persistence for admission applications.
type ApplicationRepository struct {
	read  *sqlx.DB
	write *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(read, write *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{read: read, write: write}
}

// List returns applications newest-first, optionally narrowed by status and grade.
func (r *ApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	query := "SELECT " + applicationColumns + " FROM admission_applications"
	conditions := []string{}
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Grade != "" {
		args = append(args, filter.Grade)
		conditions = append(conditions, fmt.Sprintf("grade_applying_for = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	applications := []models.Application{}
	if err := r.read.SelectContext(ctx, &applications, query, args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applications, nil
}

// FindByID fetches an application by ID.
func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := r.read.GetContext(ctx, &app, "SELECT "+applicationColumns+" FROM admission_applications WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts a new application and fills in the store-assigned fields.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	const query = `INSERT INTO admission_applications (
reference_code, student_first_name, student_last_name, student_middle_name,
date_of_birth, gender, grade_applying_for, previous_school,
parent_first_name, parent_last_name, relationship, parent_email, parent_phone, alternate_phone,
home_address, city, state, how_did_you_hear, special_needs, additional_comments, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
RETURNING id, created_at, updated_at`
	row := r.write.QueryRowxContext(ctx, query,
		app.ReferenceCode, app.StudentFirstName, app.StudentLastName, app.StudentMiddleName,
		app.DateOfBirth, app.Gender, app.GradeApplyingFor, app.PreviousSchool,
		app.ParentFirstName, app.ParentLastName, app.Relationship, app.ParentEmail, app.ParentPhone, app.AlternatePhone,
		app.HomeAddress, app.City, app.State, app.HowDidYouHear, app.SpecialNeeds, app.AdditionalComments, app.Status,
	)
	if err := row.Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// UpdateStatus moves an application to a new review status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	const query = `UPDATE admission_applications SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.write.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
