package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// ChurchInfoController handles the church information endpoints
type ChurchInfoController struct {
	churchInfoService services.ChurchInfoService
}

// NewChurchInfoController creates a new ChurchInfoController
func NewChurchInfoController(churchInfoService services.ChurchInfoService) *ChurchInfoController {
	return &ChurchInfoController{
		churchInfoService: churchInfoService,
	}
}

// GetChurchInfo returns the church information
// @Summary Get church information
// @Tags church-info
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.ChurchInfo} "Church information"
// @Failure 404 {object} dto.ErrorResponse "Church information not configured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ChurchInfo [get]
func (c *ChurchInfoController) GetChurchInfo(ctx *gin.Context) {
	info, err := c.churchInfoService.GetChurchInfo(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info, ""))
}

// UpdateChurchInfo replaces the church information
// @Summary Update church information
// @Tags church-info
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Church info ID" Format(int64) minimum(1)
// @Param request body dto.ChurchInfoRequest true "Church information"
// @Success 200 {object} dto.APIResponse{data=models.ChurchInfo} "Church information updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or ID mismatch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Church information not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /ChurchInfo/{id} [put]
func (c *ChurchInfoController) UpdateChurchInfo(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Church info")
	if !ok {
		return
	}

	var req dto.ChurchInfoRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if middleware.RejectIDMismatch(ctx, id, req.ID) {
		return
	}

	info, err := c.churchInfoService.UpdateChurchInfo(ctx, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info, "Church information updated successfully"))
}
