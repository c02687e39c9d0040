package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeshua-high/school-site-api/internal/models"
)

const eventColumns = "id, title, description, event_date, event_time, location, image_url, is_active, created_at, updated_at"

// EventRepository manages persistence for school events.
type EventRepository struct {
	read  *sqlx.DB
	write *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(read, write *sqlx.DB) *EventRepository {
	return &EventRepository{read: read, write: write}
}

// List orders by event date descending so upcoming events surface first on
// the public site.
func (r *EventRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events"
	if !filter.All {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY event_date DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	events := []models.Event{}
	if err := r.read.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListByMonth returns active events whose event_date falls inside the month.
func (r *EventRepository) ListByMonth(ctx context.Context, year int, month int) ([]models.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events
WHERE is_active = TRUE AND EXTRACT(YEAR FROM event_date) = $1 AND EXTRACT(MONTH FROM event_date) = $2
ORDER BY event_date ASC`
	events := []models.Event{}
	if err := r.read.SelectContext(ctx, &events, query, year, month); err != nil {
		return nil, fmt.Errorf("list events by month: %w", err)
	}
	return events, nil
}

// ListUpcoming returns the next active events on or after today.
func (r *EventRepository) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
WHERE is_active = TRUE AND event_date >= CURRENT_DATE ORDER BY event_date ASC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	events := []models.Event{}
	if err := r.read.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

// FindByID fetches an event by ID.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	if err := r.read.GetContext(ctx, &event, "SELECT "+eventColumns+" FROM events WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event and fills in the store-assigned fields.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	const query = `INSERT INTO events (title, description, event_date, event_time, location, image_url, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	row := r.write.QueryRowxContext(ctx, query,
		event.Title, event.Description, event.EventDate, event.EventTime, event.Location, event.ImageURL, event.IsActive)
	if err := row.Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update rewrites the event row and refreshes updated_at.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	const query = `UPDATE events SET title = $2, description = $3, event_date = $4, event_time = $5,
location = $6, image_url = $7, is_active = $8, updated_at = NOW() WHERE id = $1 RETURNING updated_at`
	row := r.write.QueryRowxContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventDate, event.EventTime, event.Location, event.ImageURL, event.IsActive)
	if err := row.Scan(&event.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// Delete removes the row permanently.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
