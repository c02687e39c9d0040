package models

import "time"

// NewsMessage is one ticker entry shown on the public site header.
type NewsMessage struct {
	ID        int64     `db:"id" json:"id"`
	Message   string    `db:"message" json:"message"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
