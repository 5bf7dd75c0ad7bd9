package dto

import "time"

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"Admin@123"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username" example:"admin"`
	FullName string `json:"fullName" example:"System Administrator"`
	Email    string `json:"email" example:"admin@voiceofchrist.org"`
}

// CurrentAdminResponse describes the admin behind the bearer token
type CurrentAdminResponse struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"admin"`
	FullName  string    `json:"fullName" example:"System Administrator"`
	Email     string    `json:"email" example:"admin@voiceofchrist.org"`
	ExpiresAt time.Time `json:"expiresAt"`
}
