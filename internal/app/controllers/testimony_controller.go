package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
	"github.com/voiceofchrist/churchsite/internal/pkg/helpers"
)

// TestimonyController handles testimony submission and moderation
type TestimonyController struct {
	testimonyService services.TestimonyService
}

// NewTestimonyController creates a new TestimonyController
func NewTestimonyController(testimonyService services.TestimonyService) *TestimonyController {
	return &TestimonyController{
		testimonyService: testimonyService,
	}
}

// GetApprovedTestimonies lists published testimonies
// @Summary List testimonies
// @Description Approved testimonies, newest first
// @Tags testimonies
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Testimony} "Testimonies retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Testimonies [get]
func (c *TestimonyController) GetApprovedTestimonies(ctx *gin.Context) {
	testimonies, err := c.testimonyService.GetApprovedTestimonies(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(testimonies, ""))
}

// SubmitTestimony accepts a visitor testimony for moderation
// @Summary Submit a testimony
// @Description The testimony is stored unapproved and published once an admin approves it
// @Tags testimonies
// @Accept json
// @Produce json
// @Param request body dto.SubmitTestimonyRequest true "Testimony"
// @Success 201 {object} dto.APIResponse{data=models.Testimony} "Testimony submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Testimonies [post]
func (c *TestimonyController) SubmitTestimony(ctx *gin.Context) {
	var req dto.SubmitTestimonyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	testimony, err := c.testimonyService.SubmitTestimony(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(testimony, "Thank you, your testimony will appear once approved"))
}

// ListTestimonies lists every testimony page by page
// @Summary List all testimonies
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Testimony}} "Testimonies retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /Admin/testimonies [get]
func (c *TestimonyController) ListTestimonies(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	testimonies, total, err := c.testimonyService.ListTestimonies(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      testimonies,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// GetTestimony retrieves any testimony by ID
// @Summary Get testimony
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimony ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Testimony} "Testimony retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Testimony not found"
// @Router /Admin/testimonies/{id} [get]
func (c *TestimonyController) GetTestimony(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Testimony")
	if !ok {
		return
	}

	testimony, err := c.testimonyService.GetTestimony(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(testimony, ""))
}

// UpdateTestimony edits a testimony; omitted fields keep their value
// @Summary Update a testimony
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimony ID" Format(int64) minimum(1)
// @Param request body dto.UpdateTestimonyRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Testimony} "Testimony updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Testimony not found"
// @Router /Admin/testimonies/{id} [put]
func (c *TestimonyController) UpdateTestimony(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Testimony")
	if !ok {
		return
	}

	var req dto.UpdateTestimonyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	testimony, err := c.testimonyService.UpdateTestimony(ctx, id, req.ToPatch())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(testimony, "Testimony updated successfully"))
}

// ApproveTestimony publishes a testimony
// @Summary Approve a testimony
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Testimony ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Testimony} "Testimony approved"
// @Failure 404 {object} dto.ErrorResponse "Testimony not found"
// @Router /Admin/testimonies/{id}/approve [post]
func (c *TestimonyController) ApproveTestimony(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Testimony")
	if !ok {
		return
	}

	testimony, err := c.testimonyService.ApproveTestimony(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(testimony, "Testimony approved"))
}

// DeleteTestimony removes a testimony
// @Summary Delete a testimony
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Testimony ID" Format(int64) minimum(1)
// @Success 204 "Testimony deleted"
// @Failure 404 {object} dto.ErrorResponse "Testimony not found"
// @Router /Admin/testimonies/{id} [delete]
func (c *TestimonyController) DeleteTestimony(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Testimony")
	if !ok {
		return
	}

	if err := c.testimonyService.DeleteTestimony(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
