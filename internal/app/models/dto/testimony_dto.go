package dto

import "github.com/voiceofchrist/churchsite/internal/app/models"

// SubmitTestimonyRequest is a public testimony submission
type SubmitTestimonyRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100" example:"Sarah Johnson"`
	Testimony string  `json:"testimony" binding:"required,min=10,max=4000" example:"God has been faithful to my family."`
}

// ToModel converts the submission into an unapproved Testimony
func (r *SubmitTestimonyRequest) ToModel() *models.Testimony {
	return &models.Testimony{
		Name:       r.Name,
		Testimony:  r.Testimony,
		IsApproved: false,
	}
}

// UpdateTestimonyRequest is a partial admin edit of a testimony's text.
// Publishing goes through the approve endpoint.
type UpdateTestimonyRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Testimony *string `json:"testimony" binding:"omitempty,min=10,max=4000"`
}

// ToPatch converts the request into a TestimonyPatch
func (r *UpdateTestimonyRequest) ToPatch() models.TestimonyPatch {
	return models.TestimonyPatch{
		Name:      r.Name,
		Testimony: r.Testimony,
	}
}
