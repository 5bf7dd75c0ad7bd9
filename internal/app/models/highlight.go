package models

import "time"

// Highlight is a media item featured on the home page.
type Highlight struct {
	ID           int64         `json:"id" db:"id" example:"1"`
	Title        string        `json:"title" db:"title" example:"Sunday Worship Service"`
	Description  *string       `json:"description,omitempty" db:"description"`
	Type         HighlightType `json:"type" db:"type" example:"0"`
	MediaURL     string        `json:"mediaUrl" db:"media_url"`
	ThumbnailURL *string       `json:"thumbnailUrl,omitempty" db:"thumbnail_url"`
	OrderIndex   int           `json:"orderIndex" db:"order_index" example:"1"`
	IsActive     bool          `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty" db:"updated_at"`
}
