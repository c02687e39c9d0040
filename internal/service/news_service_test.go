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

type mockNewsRepo struct {
	items      map[int64]*models.NewsMessage
	nextID     int64
	listResult []models.NewsMessage
	listErr    error
	deleted    []int64
}

func (m *mockNewsRepo) List(ctx context.Context, filter models.ListFilter) ([]models.NewsMessage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockNewsRepo) FindByID(ctx context.Context, id int64) (*models.NewsMessage, error) {
	if message, ok := m.items[id]; ok {
		cp := *message
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockNewsRepo) Create(ctx context.Context, message *models.NewsMessage) error {
	if m.items == nil {
		m.items = make(map[int64]*models.NewsMessage)
	}
	m.nextID++
	message.ID = m.nextID
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now
	cp := *message
	m.items[message.ID] = &cp
	return nil
}

func (m *mockNewsRepo) Update(ctx context.Context, message *models.NewsMessage) error {
	if _, ok := m.items[message.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *message
	m.items[message.ID] = &cp
	return nil
}

func (m *mockNewsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestNewsServiceCreateDefaultsActive(t *testing.T) {
	repo := &mockNewsRepo{}
	service := NewNewsService(repo, nil, validator.New(), zap.NewNop())

	message, err := service.Create(context.Background(), CreateNewsRequest{Message: "  Enrollment open  "})
	require.NoError(t, err)
	assert.Equal(t, "Enrollment open", message.Message)
	assert.True(t, message.IsActive)
	assert.NotZero(t, message.ID)
}

func TestNewsServiceCreateRejectsBlank(t *testing.T) {
	repo := &mockNewsRepo{}
	service := NewNewsService(repo, nil, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateNewsRequest{Message: "   "})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
}

func TestNewsServiceUpdatePartial(t *testing.T) {
	inactive := false
	repo := &mockNewsRepo{items: map[int64]*models.NewsMessage{
		5: {ID: 5, Message: "original", IsActive: true},
	}}
	service := NewNewsService(repo, nil, validator.New(), zap.NewNop())

	// Only is_active changes; the message text survives.
	updated, err := service.Update(context.Background(), UpdateNewsRequest{ID: 5, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Message)
	assert.False(t, updated.IsActive)
}

func TestNewsServiceUpdateMissingRow(t *testing.T) {
	repo := &mockNewsRepo{}
	service := NewNewsService(repo, nil, validator.New(), zap.NewNop())

	text := "edited"
	_, err := service.Update(context.Background(), UpdateNewsRequest{ID: 404, Message: &text})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, typed.Code)
}

func TestNewsServiceDelete(t *testing.T) {
	repo := &mockNewsRepo{items: map[int64]*models.NewsMessage{
		7: {ID: 7, Message: "stale", IsActive: false},
	}}
	service := NewNewsService(repo, nil, validator.New(), zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), 7))
	assert.Equal(t, []int64{7}, repo.deleted)

	err := service.Delete(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
