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

type newsRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.NewsMessage, error)
	FindByID(ctx context.Context, id int64) (*models.NewsMessage, error)
	Create(ctx context.Context, message *models.NewsMessage) error
	Update(ctx context.Context, message *models.NewsMessage) error
	Delete(ctx context.Context, id int64) error
}

// NewsService handles ticker message workflows.
type NewsService struct {
	repo      newsRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNewsService constructs the service.
func NewNewsService(repo newsRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *NewsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateNewsRequest describes the create payload. Activation defaults to on
// when the field is omitted.
type CreateNewsRequest struct {
	Message  string `json:"message" validate:"required"`
	IsActive *bool  `json:"is_active"`
}

// UpdateNewsRequest describes a partial update. The target row is named in
// the body, and absent fields keep their stored values.
type UpdateNewsRequest struct {
	ID       int64   `json:"id" validate:"required"`
	Message  *string `json:"message"`
	IsActive *bool   `json:"is_active"`
}

// List returns ticker messages. Admin callers pass filter.All to include
// deactivated rows; public listings go through the cache when enabled.
func (s *NewsService) List(ctx context.Context, filter models.ListFilter) ([]models.NewsMessage, error) {
	if !filter.All && s.cache.Enabled() {
		key := fmt.Sprintf("public:news:limit:%d", filter.Limit)
		var cached []models.NewsMessage
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
		messages, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list news messages")
		}
		if err := s.cache.Set(ctx, key, messages, 0); err != nil {
			s.logger.Warn("failed to cache news listing", zap.Error(err))
		}
		return messages, nil
	}

	messages, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list news messages")
	}
	return messages, nil
}

// Create registers a new ticker message.
func (s *NewsService) Create(ctx context.Context, req CreateNewsRequest) (*models.NewsMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	message := &models.NewsMessage{
		Message:  strings.TrimSpace(req.Message),
		IsActive: true,
	}
	if message.Message == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "message must not be blank")
	}
	if req.IsActive != nil {
		message.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create news message")
	}
	s.invalidate(ctx)
	return message, nil
}

// Update applies a partial update to an existing message.
func (s *NewsService) Update(ctx context.Context, req UpdateNewsRequest) (*models.NewsMessage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news message not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load news message")
	}
	if req.Message != nil {
		trimmed := strings.TrimSpace(*req.Message)
		if trimmed == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "message must not be blank")
		}
		existing.Message = trimmed
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news message not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update news message")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a message permanently.
func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "news message not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete news message")
	}
	s.invalidate(ctx)
	return nil
}

func (s *NewsService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "public:news:*"); err != nil {
		s.logger.Warn("failed to invalidate news cache", zap.Error(err))
	}
}
