package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yeshua-high/school-site-api/internal/models"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Event, error)
	ListByMonth(ctx context.Context, year, month int) ([]models.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]models.Event, error)
	FindByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// EventService handles school event workflows.
type EventService struct {
	repo      eventRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateEventRequest describes the create payload. Dates use YYYY-MM-DD and
// times use HH:MM, mirroring the column types.
type CreateEventRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description"`
	EventDate   models.DateOnly `json:"event_date"`
	EventTime   models.TimeOnly `json:"event_time"`
	Location    *string         `json:"location"`
	ImageURL    *string         `json:"image_url"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateEventRequest describes a partial update keyed by the id in the body.
type UpdateEventRequest struct {
	ID          int64            `json:"id" validate:"required"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	EventDate   *models.DateOnly `json:"event_date"`
	EventTime   *models.TimeOnly `json:"event_time"`
	Location    *string          `json:"location"`
	ImageURL    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

// List returns events, active-only unless filter.All is set.
func (s *EventService) List(ctx context.Context, filter models.ListFilter) ([]models.Event, error) {
	if !filter.All && s.cache.Enabled() {
		key := fmt.Sprintf("public:events:limit:%d", filter.Limit)
		var cached []models.Event
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
		events, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
		}
		if err := s.cache.Set(ctx, key, events, 0); err != nil {
			s.logger.Warn("failed to cache event listing", zap.Error(err))
		}
		return events, nil
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// ListUpcoming returns the next active events, soonest first.
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	events, err := s.repo.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming events")
	}
	return events, nil
}

// ListByMonth returns active events inside the given month, soonest first.
func (s *EventService) ListByMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	events, err := s.repo.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events by month")
	}
	return events, nil
}

// Create registers a new event.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.EventDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event_date is required")
	}
	event := &models.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		EventDate:   req.EventDate,
		EventTime:   req.EventTime,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.invalidate(ctx)
	return event, nil
}

// Update applies a partial update to an existing event.
func (s *EventService) Update(ctx context.Context, req UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "title must not be blank")
		}
		existing.Title = trimmed
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.EventDate != nil {
		existing.EventDate = *req.EventDate
	}
	if req.EventTime != nil {
		existing.EventTime = *req.EventTime
	}
	if req.Location != nil {
		existing.Location = req.Location
	}
	if req.ImageURL != nil {
		existing.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes an event permanently.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.invalidate(ctx)
	return nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "public:events:*"); err != nil {
		s.logger.Warn("failed to invalidate event cache", zap.Error(err))
	}
}
