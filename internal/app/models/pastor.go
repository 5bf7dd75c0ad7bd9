package models

import "time"

// Pastor is a clergy record that belongs to exactly one branch.
type Pastor struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	FirstName    string     `json:"firstName" db:"first_name" example:"John"`
	LastName     string     `json:"lastName" db:"last_name" example:"Dube"`
	Title        *string    `json:"title,omitempty" db:"title" example:"Senior Pastor"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	Email        *string    `json:"email,omitempty" db:"email" example:"pastor.john@voiceofchrist.org.za"`
	PhoneNumber  *string    `json:"phoneNumber,omitempty" db:"phone_number" example:"+27 11 123 4567"`
	PhotoURL     *string    `json:"photoUrl,omitempty" db:"photo_url"`
	OrdainedDate *time.Time `json:"ordainedDate,omitempty" db:"ordained_date" example:"2008-05-10T00:00:00Z"`
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
	BranchID     int64      `json:"branchId" db:"branch_id" example:"1"`
	Branch       *Branch    `json:"branch,omitempty"` // Relation, no db tag
}
