package dto

import "time"

// APIResponse is the envelope every endpoint responds with
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful APIResponse
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo describes one page of a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"27"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
}
