package models

import "time"

// AwardCategory buckets awards for the public gallery filter.
type AwardCategory string

const (
	AwardCategoryAcademics AwardCategory = "academics"
	AwardCategorySports    AwardCategory = "sports"
	AwardCategoryArts      AwardCategory = "arts"
	AwardCategoryAwards    AwardCategory = "awards"
	AwardCategoryEvents    AwardCategory = "events"
)

// ValidAwardCategory reports whether the category is one of the known buckets.
func ValidAwardCategory(category string) bool {
	switch AwardCategory(category) {
	case AwardCategoryAcademics, AwardCategorySports, AwardCategoryArts, AwardCategoryAwards, AwardCategoryEvents:
		return true
	default:
		return false
	}
}

// Award is a school achievement displayed on the awards gallery page.
type Award struct {
	ID          int64         `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description *string       `db:"description" json:"description,omitempty"`
	Category    AwardCategory `db:"category" json:"category"`
	ImageURL    *string       `db:"image_url" json:"imageUrl,omitempty"`
	AwardDate   DateOnly      `db:"award_date" json:"awardDate"`
	IsActive    bool          `db:"is_active" json:"isActive"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}
