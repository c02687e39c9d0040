package models

import "time"

// Event is a school event shown on the home page and calendar.
type Event struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	EventDate   DateOnly  `db:"event_date" json:"eventDate"`
	EventTime   TimeOnly  `db:"event_time" json:"eventTime"`
	Location    *string   `db:"location" json:"location,omitempty"`
	ImageURL    *string   `db:"image_url" json:"imageUrl,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
