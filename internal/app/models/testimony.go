package models

import "time"

// Testimony is a visitor-submitted text that is only shown once approved.
type Testimony struct {
	ID         int64      `json:"id" db:"id" example:"1"`
	Name       *string    `json:"name,omitempty" db:"name" example:"Sarah Johnson"`
	Testimony  string     `json:"testimony" db:"testimony"`
	IsApproved bool       `json:"isApproved" db:"is_approved" example:"false"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// TestimonyPatch is a partial testimony update. Nil fields are left untouched.
// Approval only ever moves from unapproved to approved.
type TestimonyPatch struct {
	Name      *string `json:"name,omitempty"`
	Testimony *string `json:"testimony,omitempty"`
	Approve   bool    `json:"-"`
}

// Apply merges the patch into t.
func (p TestimonyPatch) Apply(t *Testimony) {
	if p.Name != nil {
		t.Name = p.Name
	}
	if p.Testimony != nil {
		t.Testimony = *p.Testimony
	}
	if p.Approve {
		t.IsApproved = true
	}
}
