package dto

import (
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
)

// BranchRequest is the create/update payload for a branch.
// ID is optional on update; when present it must match the path id.
type BranchRequest struct {
	ID              int64      `json:"id" example:"0"`
	Name            string     `json:"name" binding:"required,max=200" example:"Soweto Branch"`
	Address         string     `json:"address" binding:"required,max=300" example:"789 Vilakazi Street"`
	City            string     `json:"city" binding:"required,max=100" example:"Soweto"`
	Province        *string    `json:"province" binding:"omitempty,max=100" example:"Gauteng"`
	PhoneNumber     *string    `json:"phoneNumber" binding:"omitempty,phone" example:"+27 11 987 6543"`
	Email           *string    `json:"email" binding:"omitempty,email" example:"soweto@voiceofchrist.org.za"`
	EstablishedDate *time.Time `json:"establishedDate" example:"2018-09-01T00:00:00Z"`
	IsActive        *bool      `json:"isActive" example:"true"`
}

// ToModel converts the request into a Branch. A missing establishedDate
// defaults to now and a missing isActive defaults to true.
func (r *BranchRequest) ToModel(now time.Time) *models.Branch {
	branch := &models.Branch{
		ID:              r.ID,
		Name:            r.Name,
		Address:         r.Address,
		City:            r.City,
		Province:        r.Province,
		PhoneNumber:     r.PhoneNumber,
		Email:           r.Email,
		EstablishedDate: now,
		IsActive:        true,
	}
	if r.EstablishedDate != nil {
		branch.EstablishedDate = *r.EstablishedDate
	}
	if r.IsActive != nil {
		branch.IsActive = *r.IsActive
	}
	return branch
}
