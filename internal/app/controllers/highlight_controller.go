package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// HighlightController handles the home page highlight reel
type HighlightController struct {
	highlightService services.HighlightService
}

// NewHighlightController creates a new HighlightController
func NewHighlightController(highlightService services.HighlightService) *HighlightController {
	return &HighlightController{
		highlightService: highlightService,
	}
}

// GetActiveHighlights lists the highlights shown on the site
// @Summary List highlights
// @Description Active highlights by ascending orderIndex
// @Tags highlights
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Highlight} "Highlights retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Highlights [get]
func (c *HighlightController) GetActiveHighlights(ctx *gin.Context) {
	highlights, err := c.highlightService.GetActiveHighlights(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(highlights, ""))
}

// GetHighlight retrieves a highlight by ID
// @Summary Get highlight
// @Tags highlights
// @Produce json
// @Param id path int true "Highlight ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Highlight} "Highlight retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Highlight not found"
// @Router /Highlights/{id} [get]
func (c *HighlightController) GetHighlight(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Highlight")
	if !ok {
		return
	}

	highlight, err := c.highlightService.GetHighlight(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(highlight, ""))
}

// GetAllHighlights lists every highlight, active or not
// @Summary List all highlights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Highlight} "Highlights retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /Admin/highlights [get]
func (c *HighlightController) GetAllHighlights(ctx *gin.Context) {
	highlights, err := c.highlightService.GetHighlights(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(highlights, ""))
}

// CreateHighlight adds a highlight
// @Summary Create a highlight
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.HighlightRequest true "Highlight information"
// @Success 201 {object} dto.APIResponse{data=models.Highlight} "Highlight created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /Admin/highlights [post]
func (c *HighlightController) CreateHighlight(ctx *gin.Context) {
	var req dto.HighlightRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	highlight, err := c.highlightService.CreateHighlight(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(highlight, "Highlight created successfully"))
}

// UpdateHighlight replaces a highlight
// @Summary Update a highlight
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Highlight ID" Format(int64) minimum(1)
// @Param request body dto.HighlightRequest true "Highlight information"
// @Success 200 {object} dto.APIResponse{data=models.Highlight} "Highlight updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or ID mismatch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Highlight not found"
// @Router /Admin/highlights/{id} [put]
func (c *HighlightController) UpdateHighlight(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Highlight")
	if !ok {
		return
	}

	var req dto.HighlightRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if middleware.RejectIDMismatch(ctx, id, req.ID) {
		return
	}

	highlight, err := c.highlightService.UpdateHighlight(ctx, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(highlight, "Highlight updated successfully"))
}

// DeleteHighlight removes a highlight
// @Summary Delete a highlight
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Highlight ID" Format(int64) minimum(1)
// @Success 204 "Highlight deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Highlight not found"
// @Router /Admin/highlights/{id} [delete]
func (c *HighlightController) DeleteHighlight(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Highlight")
	if !ok {
		return
	}

	if err := c.highlightService.DeleteHighlight(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
