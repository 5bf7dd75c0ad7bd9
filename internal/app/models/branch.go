package models

import "time"

// Branch is a physical church location.
type Branch struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	Name            string    `json:"name" db:"name" example:"Main Branch - Johannesburg"`
	Address         string    `json:"address" db:"address" example:"123 Church Street"`
	City            string    `json:"city" db:"city" example:"Johannesburg"`
	Province        *string   `json:"province,omitempty" db:"province" example:"Gauteng"`
	PhoneNumber     *string   `json:"phoneNumber,omitempty" db:"phone_number" example:"+27 11 123 4567"`
	Email           *string   `json:"email,omitempty" db:"email" example:"jhb@voiceofchrist.org.za"`
	EstablishedDate time.Time `json:"establishedDate" db:"established_date" example:"2010-03-15T00:00:00Z"`
	IsActive        bool      `json:"isActive" db:"is_active" example:"true"`
	Pastors         []*Pastor `json:"pastors,omitempty"` // Relation, no db tag
	Events          []*Event  `json:"events,omitempty"`  // Relation, no db tag
}

// BranchSummary is the back-office view of a branch with relation counts.
type BranchSummary struct {
	Branch
	PastorCount int `json:"pastorCount" example:"2"`
	EventCount  int `json:"eventCount" example:"4"`
}
