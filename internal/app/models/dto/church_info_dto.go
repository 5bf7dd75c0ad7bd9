package dto

import (
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
)

// ChurchInfoRequest replaces the church information
type ChurchInfoRequest struct {
	ID           int64      `json:"id" example:"1"`
	Mission      string     `json:"mission" binding:"required"`
	Vision       string     `json:"vision" binding:"required"`
	Beliefs      string     `json:"beliefs" binding:"required"`
	History      *string    `json:"history"`
	ContactEmail *string    `json:"contactEmail" binding:"omitempty,email" example:"info@voiceofchrist.org.za"`
	ContactPhone *string    `json:"contactPhone" binding:"omitempty,phone" example:"+27 11 123 4567"`
	FoundedDate  *time.Time `json:"foundedDate" example:"2005-01-01T00:00:00Z"`
	HeroVideoURL *string    `json:"heroVideoUrl" binding:"omitempty,max=500"`
}

// ToModel converts the request into a ChurchInfo
func (r *ChurchInfoRequest) ToModel() *models.ChurchInfo {
	return &models.ChurchInfo{
		ID:           r.ID,
		Mission:      r.Mission,
		Vision:       r.Vision,
		Beliefs:      r.Beliefs,
		History:      r.History,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		FoundedDate:  r.FoundedDate,
		HeroVideoURL: r.HeroVideoURL,
	}
}
