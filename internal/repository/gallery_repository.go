package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yeshua-high/school-site-api/internal/models"
)

const galleryColumns = "id, title, image_url, category, is_active, created_at, updated_at"

// GalleryRepository manages persistence for gallery images.
type GalleryRepository struct {
	read  *sqlx.DB
	write *sqlx.DB
}

// NewGalleryRepository constructs a GalleryRepository.
func NewGalleryRepository(read, write *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{read: read, write: write}
}

// List returns gallery images newest-first, active-only unless filter.All is set.
func (r *GalleryRepository) List(ctx context.Context, filter models.ListFilter) ([]models.GalleryImage, error) {
	query := "SELECT " + galleryColumns + " FROM gallery_images"
	if !filter.All {
		query += " WHERE is_active = TRUE"
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	images := []models.GalleryImage{}
	if err := r.read.SelectContext(ctx, &images, query); err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

// FindByID fetches a gallery image by ID.
func (r *GalleryRepository) FindByID(ctx context.Context, id int64) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := r.read.GetContext(ctx, &image, "SELECT "+galleryColumns+" FROM gallery_images WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &image, nil
}

// Create inserts a new gallery image and fills in the store-assigned fields.
func (r *GalleryRepository) Create(ctx context.Context, image *models.GalleryImage) error {
	const query = `INSERT INTO gallery_images (title, image_url, category, is_active)
VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	row := r.write.QueryRowxContext(ctx, query, image.Title, image.ImageURL, image.Category, image.IsActive)
	if err := row.Scan(&image.ID, &image.CreatedAt, &image.UpdatedAt); err != nil {
		return fmt.Errorf("create gallery image: %w", err)
	}
	return nil
}

// Update rewrites the gallery image row and refreshes updated_at.
func (r *GalleryRepository) Update(ctx context.Context, image *models.GalleryImage) error {
	const query = `UPDATE gallery_images SET title = $2, image_url = $3, category = $4, is_active = $5, updated_at = NOW()
WHERE id = $1 RETURNING updated_at`
	row := r.write.QueryRowxContext(ctx, query, image.ID, image.Title, image.ImageURL, image.Category, image.IsActive)
	if err := row.Scan(&image.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// Delete removes the row permanently.
func (r *GalleryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.write.ExecContext(ctx, "DELETE FROM gallery_images WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete gallery image: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
