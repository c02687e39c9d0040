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

type awardRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Award, error)
	FindByID(ctx context.Context, id int64) (*models.Award, error)
	Create(ctx context.Context, award *models.Award) error
	Update(ctx context.Context, award *models.Award) error
	Delete(ctx context.Context, id int64) error
}

// AwardService handles achievement gallery workflows.
type AwardService struct {
	repo      awardRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAwardService constructs the service and registers the category rule.
func NewAwardService(repo awardRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AwardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AwardService{repo: repo, cache: cache, validator: validate, logger: logger}
	svc.validator.RegisterValidation("award_category", func(fl validator.FieldLevel) bool {
		return models.ValidAwardCategory(fl.Field().String())
	})
	return svc
}

// CreateAwardRequest describes the create payload.
type CreateAwardRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description"`
	Category    string          `json:"category" validate:"required,award_category"`
	ImageURL    *string         `json:"image_url"`
	AwardDate   models.DateOnly `json:"award_date"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateAwardRequest describes a partial update keyed by the id in the body.
type UpdateAwardRequest struct {
	ID          int64            `json:"id" validate:"required"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,award_category"`
	ImageURL    *string          `json:"image_url"`
	AwardDate   *models.DateOnly `json:"award_date"`
	IsActive    *bool            `json:"is_active"`
}

// List returns awards, active-only unless filter.All is set.
func (s *AwardService) List(ctx context.Context, filter models.ListFilter) ([]models.Award, error) {
	if !filter.All && s.cache.Enabled() {
		key := fmt.Sprintf("public:awards:limit:%d", filter.Limit)
		var cached []models.Award
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
		awards, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list awards")
		}
		if err := s.cache.Set(ctx, key, awards, 0); err != nil {
			s.logger.Warn("failed to cache award listing", zap.Error(err))
		}
		return awards, nil
	}

	awards, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list awards")
	}
	return awards, nil
}

// Create registers a new award.
func (s *AwardService) Create(ctx context.Context, req CreateAwardRequest) (*models.Award, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	award := &models.Award{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    models.AwardCategory(req.Category),
		ImageURL:    req.ImageURL,
		AwardDate:   req.AwardDate,
		IsActive:    true,
	}
	if req.IsActive != nil {
		award.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, award); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create award")
	}
	s.invalidate(ctx)
	return award, nil
}

// Update applies a partial update to an existing award.
func (s *AwardService) Update(ctx context.Context, req UpdateAwardRequest) (*models.Award, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "award not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load award")
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
	if req.Category != nil {
		existing.Category = models.AwardCategory(*req.Category)
	}
	if req.ImageURL != nil {
		existing.ImageURL = req.ImageURL
	}
	if req.AwardDate != nil {
		existing.AwardDate = *req.AwardDate
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "award not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update award")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes an award permanently.
func (s *AwardService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "award not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete award")
	}
	s.invalidate(ctx)
	return nil
}

func (s *AwardService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "public:awards:*"); err != nil {
		s.logger.Warn("failed to invalidate award cache", zap.Error(err))
	}
}
