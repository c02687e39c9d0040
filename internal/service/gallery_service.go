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

type galleryRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.GalleryImage, error)
	FindByID(ctx context.Context, id int64) (*models.GalleryImage, error)
	Create(ctx context.Context, image *models.GalleryImage) error
	Update(ctx context.Context, image *models.GalleryImage) error
	Delete(ctx context.Context, id int64) error
}

// GalleryService handles photo gallery workflows.
type GalleryService struct {
	repo      galleryRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGalleryService constructs the service.
func NewGalleryService(repo galleryRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *GalleryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// CreateGalleryImageRequest describes the create payload. The image URL
// comes from a prior upload call.
type CreateGalleryImageRequest struct {
	Title    *string `json:"title"`
	ImageURL string  `json:"image_url" validate:"required"`
	Category *string `json:"category"`
	IsActive *bool   `json:"is_active"`
}

// UpdateGalleryImageRequest describes a partial update keyed by the id in
// the body.
type UpdateGalleryImageRequest struct {
	ID       int64   `json:"id" validate:"required"`
	Title    *string `json:"title"`
	ImageURL *string `json:"image_url"`
	Category *string `json:"category"`
	IsActive *bool   `json:"is_active"`
}

// List returns gallery images, active-only unless filter.All is set.
func (s *GalleryService) List(ctx context.Context, filter models.ListFilter) ([]models.GalleryImage, error) {
	if !filter.All && s.cache.Enabled() {
		key := fmt.Sprintf("public:gallery:limit:%d", filter.Limit)
		var cached []models.GalleryImage
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
		images, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list gallery images")
		}
		if err := s.cache.Set(ctx, key, images, 0); err != nil {
			s.logger.Warn("failed to cache gallery listing", zap.Error(err))
		}
		return images, nil
	}

	images, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list gallery images")
	}
	return images, nil
}

// Create registers a new gallery image.
func (s *GalleryService) Create(ctx context.Context, req CreateGalleryImageRequest) (*models.GalleryImage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	image := &models.GalleryImage{
		Title:    req.Title,
		ImageURL: strings.TrimSpace(req.ImageURL),
		Category: req.Category,
		IsActive: true,
	}
	if image.ImageURL == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "image_url must not be blank")
	}
	if req.IsActive != nil {
		image.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create gallery image")
	}
	s.invalidate(ctx)
	return image, nil
}

// Update applies a partial update to an existing gallery image.
func (s *GalleryService) Update(ctx context.Context, req UpdateGalleryImageRequest) (*models.GalleryImage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gallery image not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load gallery image")
	}
	if req.Title != nil {
		existing.Title = req.Title
	}
	if req.ImageURL != nil {
		trimmed := strings.TrimSpace(*req.ImageURL)
		if trimmed == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "image_url must not be blank")
		}
		existing.ImageURL = trimmed
	}
	if req.Category != nil {
		existing.Category = req.Category
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "gallery image not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update gallery image")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete removes a gallery image permanently.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "gallery image not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete gallery image")
	}
	s.invalidate(ctx)
	return nil
}

func (s *GalleryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "public:gallery:*"); err != nil {
		s.logger.Warn("failed to invalidate gallery cache", zap.Error(err))
	}
}
