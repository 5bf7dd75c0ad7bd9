package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
)

// HealthController reports liveness
type HealthController struct {
	storage string
	ping    func(ctx context.Context) error
}

// NewHealthController creates a HealthController. ping checks the storage
// backend and may be nil.
func NewHealthController(storage string, ping func(ctx context.Context) error) *HealthController {
	return &HealthController{
		storage: storage,
		ping:    ping,
	}
}

// Health reports whether the API and its storage respond
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse} "Healthy"
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse} "Storage unavailable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Storage: c.storage}
	if c.ping != nil {
		if err := c.ping(ctx.Request.Context()); err != nil {
			resp.Status = "unavailable"
			ctx.JSON(http.StatusServiceUnavailable, dto.APIResponse{
				Success:   false,
				Data:      resp,
				Error:     dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Storage unavailable"),
				Timestamp: time.Now(),
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Ping answers with pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
