package models

import (
	"time"
)

// Event is a scheduled occurrence, church-wide when BranchID is nil.
type Event struct {
	ID          int64       `json:"id" db:"id" example:"1"`
	Title       string      `json:"title" db:"title" example:"Sunday Worship Service"`
	Description *string     `json:"description,omitempty" db:"description"`
	EventDate   time.Time   `json:"eventDate" db:"event_date" example:"2025-11-23T09:00:00Z"`
	EndDate     *time.Time  `json:"endDate,omitempty" db:"end_date"`
	Location    *string     `json:"location,omitempty" db:"location" example:"Main Church Auditorium"`
	ImageURL    *string     `json:"imageUrl,omitempty" db:"image_url"`
	Type        EventType   `json:"type" db:"type" example:"1"`
	Status      EventStatus `json:"status" db:"status" example:"0"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty" db:"updated_at"`
	BranchID    *int64      `json:"branchId,omitempty" db:"branch_id" example:"1"`
	Branch      *Branch     `json:"branch,omitempty"`     // Relation, no db tag
	BranchName  *string     `json:"branchName,omitempty"` // Filled by back-office listings only
}

// IsUpcomingAt reports whether the event is scheduled and not yet started at now.
func (e *Event) IsUpcomingAt(now time.Time) bool {
	return e.Status == EventStatusUpcoming && !e.EventDate.Before(now)
}

// IsPastAt reports whether the event is completed or already dated before now.
// Status and date are independent: a cancelled event in the past is still past.
func (e *Event) IsPastAt(now time.Time) bool {
	return e.Status == EventStatusCompleted || e.EventDate.Before(now)
}
