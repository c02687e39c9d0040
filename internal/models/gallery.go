package models

import "time"

// GalleryImage is one photo in the public gallery.
type GalleryImage struct {
	ID        int64     `db:"id" json:"id"`
	Title     *string   `db:"title" json:"title,omitempty"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	Category  *string   `db:"category" json:"category,omitempty"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
