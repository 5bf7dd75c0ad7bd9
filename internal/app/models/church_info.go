package models

import "time"

// ChurchInfo holds the singleton "about" content of the church.
type ChurchInfo struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Mission      string     `json:"mission" db:"mission"`
	Vision       string     `json:"vision" db:"vision"`
	Beliefs      string     `json:"beliefs" db:"beliefs"`
	History      *string    `json:"history,omitempty" db:"history"`
	ContactEmail *string    `json:"contactEmail,omitempty" db:"contact_email" example:"info@voiceofchrist.org.za"`
	ContactPhone *string    `json:"contactPhone,omitempty" db:"contact_phone" example:"+27 11 123 4567"`
	FoundedDate  *time.Time `json:"foundedDate,omitempty" db:"founded_date"`
	HeroVideoURL *string    `json:"heroVideoUrl,omitempty" db:"hero_video_url"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}
