package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeshua-high/school-site-api/internal/models"
)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "event_date", "event_time", "location", "image_url", "is_active", "created_at", "updated_at"})
}

func TestEventRepositoryListOrdersByEventDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db, db)

	rows := eventRows().
		AddRow(int64(2), "Sports Day", nil, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), nil, "Main Field", nil, true, time.Now(), time.Now()).
		AddRow(int64(1), "Open House", nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), nil, "Auditorium", nil, true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+eventColumns+" FROM events WHERE is_active = TRUE ORDER BY event_date DESC")).
		WillReturnRows(rows)

	events, err := repo.List(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sports Day", events[0].Title)
	assert.Equal(t, "2026-10-12", events[0].EventDate.Format("2006-01-02"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryListByMonth(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db, db)

	rows := eventRows().
		AddRow(int64(5), "Career Fair", nil, time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC), nil, "Hall B", nil, true, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM events\\s+WHERE is_active = TRUE AND EXTRACT\\(YEAR FROM event_date\\) = \\$1 AND EXTRACT\\(MONTH FROM event_date\\) = \\$2").
		WithArgs(2026, 11).
		WillReturnRows(rows)

	events, err := repo.ListByMonth(context.Background(), 2026, 11)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Career Fair", events[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepositoryCreateNullableFields(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db, db)

	now := time.Now()
	location := "Auditorium"
	mock.ExpectQuery("INSERT INTO events").
		WithArgs("Open House", nil, sqlmock.AnyArg(), nil, &location, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	event := &models.Event{
		Title:     "Open House",
		EventDate: models.NewDate(2026, time.September, 1),
		Location:  &location,
		IsActive:  true,
	}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(1), event.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
