package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

type mockApplicationRepo struct {
	items    map[int64]*models.Application
	nextID   int64
	reviewed []int64
}

func (m *mockApplicationRepo) List(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	out := []models.Application{}
	for _, app := range m.items {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if filter.Grade != "" && app.GradeApplyingFor != filter.Grade {
			continue
		}
		out = append(out, *app)
	}
	return out, nil
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, id int64) (*models.Application, error) {
	if app, ok := m.items[id]; ok {
		cp := *app
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Application)
	}
	m.nextID++
	app.ID = m.nextID
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	cp := *app
	m.items[app.ID] = &cp
	return nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	app, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	app.Status = status
	m.reviewed = append(m.reviewed, id)
	return nil
}

func validSubmission() SubmitApplicationRequest {
	return SubmitApplicationRequest{
		StudentFirstName: "Ada",
		StudentLastName:  "Obi",
		DateOfBirth:      models.NewDate(2015, time.March, 14),
		Gender:           "female",
		GradeApplyingFor: "JSS1",
		ParentFirstName:  "Ngozi",
		ParentLastName:   "Obi",
		Relationship:     "mother",
		ParentEmail:      "ngozi@example.com",
		ParentPhone:      "+2348010000000",
	}
}

func TestApplicationServiceSubmit(t *testing.T) {
	repo := &mockApplicationRepo{}
	service := NewApplicationService(repo, validator.New(), zap.NewNop())

	app, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)
	assert.True(t, strings.HasPrefix(app.ReferenceCode, "APP-"), app.ReferenceCode)
	assert.NotZero(t, app.ID)
}

func TestApplicationServiceSubmitValidation(t *testing.T) {
	repo := &mockApplicationRepo{}
	service := NewApplicationService(repo, validator.New(), zap.NewNop())

	req := validSubmission()
	req.ParentEmail = "not-an-email"
	_, err := service.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validSubmission()
	req.DateOfBirth = models.DateOnly{}
	_, err = service.Submit(context.Background(), req)
	require.Error(t, err)

	req = validSubmission()
	req.Gender = "other"
	_, err = service.Submit(context.Background(), req)
	require.Error(t, err)
}

func TestApplicationServiceMarkReviewed(t *testing.T) {
	repo := &mockApplicationRepo{}
	service := NewApplicationService(repo, validator.New(), zap.NewNop())

	app, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	require.NoError(t, service.MarkReviewed(context.Background(), app.ID))
	stored, err := service.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusReviewed, stored.Status)

	err = service.MarkReviewed(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationServiceExport(t *testing.T) {
	repo := &mockApplicationRepo{}
	service := NewApplicationService(repo, validator.New(), zap.NewNop())

	_, err := service.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	payload, contentType, err := service.Export(context.Background(), models.ApplicationFilter{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "Ada Obi")
	assert.Contains(t, string(payload), "JSS1")

	pdf, contentType, err := service.Export(context.Background(), models.ApplicationFilter{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, len(pdf) > 0)

	_, _, err = service.Export(context.Background(), models.ApplicationFilter{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
