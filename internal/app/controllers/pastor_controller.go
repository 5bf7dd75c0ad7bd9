package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// PastorController handles pastor endpoints
type PastorController struct {
	pastorService services.PastorService
}

// NewPastorController creates a new PastorController
func NewPastorController(pastorService services.PastorService) *PastorController {
	return &PastorController{
		pastorService: pastorService,
	}
}

// GetPastors lists active pastors
// @Summary List pastors
// @Description Lists active pastors with their branch
// @Tags pastors
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Pastor} "Pastors retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Pastors [get]
func (c *PastorController) GetPastors(ctx *gin.Context) {
	pastors, err := c.pastorService.GetPastors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pastors, ""))
}

// GetPastor retrieves a pastor by ID
// @Summary Get pastor
// @Tags pastors
// @Produce json
// @Param id path int true "Pastor ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Pastor} "Pastor retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pastor ID format"
// @Failure 404 {object} dto.ErrorResponse "Pastor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Pastors/{id} [get]
func (c *PastorController) GetPastor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Pastor")
	if !ok {
		return
	}

	pastor, err := c.pastorService.GetPastor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pastor, ""))
}

// GetPastorsByBranch lists the active pastors of a branch
// @Summary List pastors of a branch
// @Tags pastors
// @Produce json
// @Param branchId path int true "Branch ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Pastor} "Pastors retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid branch ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Pastors/branch/{branchId} [get]
func (c *PastorController) GetPastorsByBranch(ctx *gin.Context) {
	branchID, ok := middleware.ParseIDParam(ctx, "branchId", "Branch")
	if !ok {
		return
	}

	pastors, err := c.pastorService.GetPastorsByBranch(ctx, branchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pastors, ""))
}

// CreatePastor handles pastor creation
// @Summary Create a pastor
// @Tags pastors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PastorRequest true "Pastor information"
// @Success 201 {object} dto.APIResponse{data=models.Pastor} "Pastor created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or inactive branch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Pastors [post]
func (c *PastorController) CreatePastor(ctx *gin.Context) {
	var req dto.PastorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	pastor, err := c.pastorService.CreatePastor(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pastor, "Pastor created successfully"))
}

// UpdatePastor replaces a pastor
// @Summary Update a pastor
// @Tags pastors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pastor ID" Format(int64) minimum(1)
// @Param request body dto.PastorRequest true "Pastor information"
// @Success 200 {object} dto.APIResponse{data=models.Pastor} "Pastor updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data, ID mismatch or inactive branch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Pastor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Pastors/{id} [put]
func (c *PastorController) UpdatePastor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Pastor")
	if !ok {
		return
	}

	var req dto.PastorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if middleware.RejectIDMismatch(ctx, id, req.ID) {
		return
	}

	pastor, err := c.pastorService.UpdatePastor(ctx, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pastor, "Pastor updated successfully"))
}

// DeletePastor deactivates a pastor
// @Summary Deactivate a pastor
// @Tags pastors
// @Security BearerAuth
// @Param id path int true "Pastor ID" Format(int64) minimum(1)
// @Success 204 "Pastor deactivated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Pastor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Pastors/{id} [delete]
func (c *PastorController) DeletePastor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Pastor")
	if !ok {
		return
	}

	if err := c.pastorService.DeletePastor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
