package dto

import "github.com/voiceofchrist/churchsite/internal/app/models"

// HighlightRequest is the create/update payload for a highlight
type HighlightRequest struct {
	ID           int64                 `json:"id" example:"0"`
	Title        string                `json:"title" binding:"required,max=200" example:"Easter Celebration"`
	Description  *string               `json:"description" binding:"omitempty,max=2000"`
	Type         *models.HighlightType `json:"type" example:"0"`
	MediaURL     string                `json:"mediaUrl" binding:"required,max=500" example:"/uploads/media/easter.jpg"`
	ThumbnailURL *string               `json:"thumbnailUrl" binding:"omitempty,max=500"`
	OrderIndex   int                   `json:"orderIndex" binding:"min=0" example:"1"`
	IsActive     *bool                 `json:"isActive" example:"true"`
}

// ToModel converts the request into a Highlight. Type defaults to Image
// and isActive to true.
func (r *HighlightRequest) ToModel() *models.Highlight {
	highlight := &models.Highlight{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Type:         models.HighlightTypeImage,
		MediaURL:     r.MediaURL,
		ThumbnailURL: r.ThumbnailURL,
		OrderIndex:   r.OrderIndex,
		IsActive:     true,
	}
	if r.Type != nil {
		highlight.Type = *r.Type
	}
	if r.IsActive != nil {
		highlight.IsActive = *r.IsActive
	}
	return highlight
}
