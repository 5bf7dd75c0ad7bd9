package dto

import (
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
)

// EventRequest is the create/update payload for an event.
// A nil branchId makes the event church-wide.
type EventRequest struct {
	ID          int64               `json:"id" example:"0"`
	Title       string              `json:"title" binding:"required,max=200" example:"Youth Conference 2025"`
	Description *string             `json:"description" binding:"omitempty,max=4000"`
	EventDate   *time.Time          `json:"eventDate" binding:"required" example:"2025-12-15T09:00:00Z"`
	EndDate     *time.Time          `json:"endDate" example:"2025-12-17T17:00:00Z"`
	Location    *string             `json:"location" binding:"omitempty,max=300" example:"Main Church Complex"`
	ImageURL    *string             `json:"imageUrl" binding:"omitempty,max=500"`
	Type        *models.EventType   `json:"type" example:"3"`
	Status      *models.EventStatus `json:"status" example:"0"`
	BranchID    *int64              `json:"branchId" binding:"omitempty,min=1" example:"1"`
}

// ToModel converts the request into an Event. Type defaults to General
// and status to Upcoming.
func (r *EventRequest) ToModel() *models.Event {
	event := &models.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		EndDate:     r.EndDate,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		Type:        models.EventTypeGeneral,
		Status:      models.EventStatusUpcoming,
		BranchID:    r.BranchID,
	}
	if r.EventDate != nil {
		event.EventDate = *r.EventDate
	}
	if r.Type != nil {
		event.Type = *r.Type
	}
	if r.Status != nil {
		event.Status = *r.Status
	}
	return event
}

// EventStatusRequest changes only the status of an event
type EventStatusRequest struct {
	Status *models.EventStatus `json:"status" binding:"required" example:"1"`
}
