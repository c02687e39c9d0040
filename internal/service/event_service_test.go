package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

type mockEventRepo struct {
	items    map[int64]*models.Event
	nextID   int64
	upcoming []models.Event
}

func (m *mockEventRepo) List(ctx context.Context, filter models.ListFilter) ([]models.Event, error) {
	result := make([]models.Event, 0, len(m.items))
	for _, event := range m.items {
		if !filter.All && !event.IsActive {
			continue
		}
		result = append(result, *event)
	}
	return result, nil
}

func (m *mockEventRepo) ListByMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	var result []models.Event
	for _, event := range m.items {
		if event.IsActive && event.EventDate.Year() == year && int(event.EventDate.Month()) == month {
			result = append(result, *event)
		}
	}
	return result, nil
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit > 0 && limit < len(m.upcoming) {
		return m.upcoming[:limit], nil
	}
	return m.upcoming, nil
}

func (m *mockEventRepo) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	if event, ok := m.items[id]; ok {
		cp := *event
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Event)
	}
	m.nextID++
	event.ID = m.nextID
	cp := *event
	m.items[event.ID] = &cp
	return nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	if _, ok := m.items[event.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *event
	m.items[event.ID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func TestEventServiceCreateRequiresDate(t *testing.T) {
	repo := &mockEventRepo{}
	service := NewEventService(repo, nil, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateEventRequest{Title: "Open House"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceCreateOptionalFields(t *testing.T) {
	repo := &mockEventRepo{}
	service := NewEventService(repo, nil, validator.New(), zap.NewNop())

	event, err := service.Create(context.Background(), CreateEventRequest{
		Title:     "  Open House ",
		EventDate: models.NewDate(2026, time.October, 14),
	})
	require.NoError(t, err)
	assert.Equal(t, "Open House", event.Title)
	assert.True(t, event.IsActive)
	assert.Nil(t, event.Location)
	assert.True(t, event.EventTime.IsZero())
}

func TestEventServiceUpdatePartial(t *testing.T) {
	location := "Main Hall"
	repo := &mockEventRepo{items: map[int64]*models.Event{
		3: {ID: 3, Title: "Sports Day", EventDate: models.NewDate(2026, time.November, 6), IsActive: true},
	}}
	service := NewEventService(repo, nil, validator.New(), zap.NewNop())

	// Only the location changes; title and date survive.
	updated, err := service.Update(context.Background(), UpdateEventRequest{ID: 3, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Sports Day", updated.Title)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Main Hall", *updated.Location)
	assert.Equal(t, "2026-11-06", updated.EventDate.Format("2006-01-02"))
}

func TestEventServiceUpdateRejectsBlankTitle(t *testing.T) {
	repo := &mockEventRepo{items: map[int64]*models.Event{
		3: {ID: 3, Title: "Sports Day", EventDate: models.NewDate(2026, time.November, 6), IsActive: true},
	}}
	service := NewEventService(repo, nil, validator.New(), zap.NewNop())

	blank := "   "
	_, err := service.Update(context.Background(), UpdateEventRequest{ID: 3, Title: &blank})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceUpdateMissingRow(t *testing.T) {
	repo := &mockEventRepo{}
	service := NewEventService(repo, nil, validator.New(), zap.NewNop())

	active := false
	_, err := service.Update(context.Background(), UpdateEventRequest{ID: 99, IsActive: &active})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceListUpcomingLimit(t *testing.T) {
	repo := &mockEventRepo{upcoming: []models.Event{
		{ID: 1, Title: "Carol Service", EventDate: models.NewDate(2026, time.December, 11)},
		{ID: 2, Title: "Exhibition", EventDate: models.NewDate(2026, time.December, 15)},
		{ID: 3, Title: "Graduation", EventDate: models.NewDate(2027, time.July, 2)},
	}}
	service := NewEventService(repo, nil, validator.New(), zap.NewNop())

	events, err := service.ListUpcoming(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Carol Service", events[0].Title)
}
