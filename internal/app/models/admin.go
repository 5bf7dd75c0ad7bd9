package models

import "time"

// Admin is a back-office account. Credentials are only checked for active admins.
type Admin struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Username     string     `json:"username" db:"username" example:"admin"`
	PasswordHash string     `json:"-" db:"password_hash"` // bcrypt hash, never serialized
	Email        string     `json:"email" db:"email" example:"admin@voiceofchrist.org"`
	FullName     string     `json:"fullName" db:"full_name" example:"System Administrator"`
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// Statistics is the back-office dashboard summary.
type Statistics struct {
	TotalBranches   int `json:"totalBranches" example:"3"`
	TotalPastors    int `json:"totalPastors" example:"4"`
	TotalEvents     int `json:"totalEvents" example:"6"`
	UpcomingEvents  int `json:"upcomingEvents" example:"4"`
	CompletedEvents int `json:"completedEvents" example:"2"`
	RecentEvents    int `json:"recentEvents" example:"1"` // created in the last RecentEventsWindow
}

// RecentEventsWindow is how far back Statistics.RecentEvents looks.
const RecentEventsWindow = 30 * 24 * time.Hour
