package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes a 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// ParseIDParam reads a positive int64 path parameter. On failure it writes a
// 400 response and returns false.
func ParseIDParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithField(name).WithDetails(label + " ID must be a positive number")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// RejectIDMismatch writes a 400 response and returns true when a non-zero
// body id differs from the path id.
func RejectIDMismatch(c *gin.Context, pathID, bodyID int64) bool {
	if bodyID == 0 || bodyID == pathID {
		return false
	}
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "ID mismatch").
		WithField("id").
		WithDetails("The id in the body does not match the id in the path")
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return true
}
