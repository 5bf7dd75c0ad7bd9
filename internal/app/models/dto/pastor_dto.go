package dto

import (
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
)

// PastorRequest is the create/update payload for a pastor
type PastorRequest struct {
	ID           int64      `json:"id" example:"0"`
	FirstName    string     `json:"firstName" binding:"required,max=100" example:"David"`
	LastName     string     `json:"lastName" binding:"required,max=100" example:"Mthembu"`
	Title        *string    `json:"title" binding:"omitempty,max=100" example:"Associate Pastor"`
	Bio          *string    `json:"bio" binding:"omitempty,max=2000"`
	Email        *string    `json:"email" binding:"omitempty,email" example:"pastor.david@voiceofchrist.org.za"`
	PhoneNumber  *string    `json:"phoneNumber" binding:"omitempty,phone" example:"+27 31 555 0101"`
	PhotoURL     *string    `json:"photoUrl" binding:"omitempty,max=500"`
	OrdainedDate *time.Time `json:"ordainedDate" example:"2015-02-20T00:00:00Z"`
	IsActive     *bool      `json:"isActive" example:"true"`
	BranchID     int64      `json:"branchId" binding:"required,min=1" example:"2"`
}

// ToModel converts the request into a Pastor; isActive defaults to true.
func (r *PastorRequest) ToModel() *models.Pastor {
	pastor := &models.Pastor{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Title:        r.Title,
		Bio:          r.Bio,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		PhotoURL:     r.PhotoURL,
		OrdainedDate: r.OrdainedDate,
		IsActive:     true,
		BranchID:     r.BranchID,
	}
	if r.IsActive != nil {
		pastor.IsActive = *r.IsActive
	}
	return pastor
}
