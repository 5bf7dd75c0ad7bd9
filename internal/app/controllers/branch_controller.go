package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// BranchController handles the public branch endpoints
type BranchController struct {
	branchService services.BranchService
}

// NewBranchController creates a new BranchController
func NewBranchController(branchService services.BranchService) *BranchController {
	return &BranchController{
		branchService: branchService,
	}
}

// GetBranches lists branches
// @Summary List branches
// @Description Lists active branches, each with its active pastors
// @Tags branches
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Branch} "Branches retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Branches [get]
func (c *BranchController) GetBranches(ctx *gin.Context) {
	branches, err := c.branchService.GetBranches(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(branches, ""))
}

// GetBranch retrieves a branch with its pastors and events
// @Summary Get branch
// @Tags branches
// @Produce json
// @Param id path int true "Branch ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Branch} "Branch retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid branch ID format"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Branches/{id} [get]
func (c *BranchController) GetBranch(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Branch")
	if !ok {
		return
	}

	branch, err := c.branchService.GetBranch(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(branch, ""))
}

// CreateBranch handles branch creation
// @Summary Create a branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BranchRequest true "Branch information"
// @Success 201 {object} dto.APIResponse{data=models.Branch} "Branch created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Branches [post]
func (c *BranchController) CreateBranch(ctx *gin.Context) {
	createBranch(ctx, c.branchService)
}

// UpdateBranch replaces a branch
// @Summary Update a branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID" Format(int64) minimum(1)
// @Param request body dto.BranchRequest true "Branch information"
// @Success 200 {object} dto.APIResponse{data=models.Branch} "Branch updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or ID mismatch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 409 {object} dto.ErrorResponse "Branch changed concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Branches/{id} [put]
func (c *BranchController) UpdateBranch(ctx *gin.Context) {
	updateBranch(ctx, c.branchService)
}

// DeleteBranch hides a branch from the public site
// @Summary Deactivate a branch
// @Description Soft delete: the branch is marked inactive
// @Tags branches
// @Security BearerAuth
// @Param id path int true "Branch ID" Format(int64) minimum(1)
// @Success 204 "Branch deactivated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Branches/{id} [delete]
func (c *BranchController) DeleteBranch(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Branch")
	if !ok {
		return
	}

	if err := c.branchService.DeleteBranch(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// createBranch and updateBranch are shared with the admin routes

func createBranch(ctx *gin.Context, branchService services.BranchService) {
	var req dto.BranchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	branch, err := branchService.CreateBranch(ctx, req.ToModel(time.Now().UTC()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(branch, "Branch created successfully"))
}

func updateBranch(ctx *gin.Context, branchService services.BranchService) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Branch")
	if !ok {
		return
	}

	var req dto.BranchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if middleware.RejectIDMismatch(ctx, id, req.ID) {
		return
	}

	branch, err := branchService.UpdateBranch(ctx, id, req.ToModel(time.Now().UTC()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(branch, "Branch updated successfully"))
}
