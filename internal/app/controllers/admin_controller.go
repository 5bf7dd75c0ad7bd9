package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// AdminController serves the back-office dashboard
type AdminController struct {
	branchService     services.BranchService
	eventService      services.EventService
	statisticsService services.StatisticsService
}

// NewAdminController creates a new AdminController
func NewAdminController(
	branchService services.BranchService,
	eventService services.EventService,
	statisticsService services.StatisticsService,
) *AdminController {
	return &AdminController{
		branchService:     branchService,
		eventService:      eventService,
		statisticsService: statisticsService,
	}
}

// GetStatistics returns the dashboard counters
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Statistics} "Statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Admin/statistics [get]
func (c *AdminController) GetStatistics(ctx *gin.Context) {
	stats, err := c.statisticsService.GetStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// GetBranches lists every branch with relation counts
// @Summary List all branches
// @Description Every branch, active or not, with pastorCount and eventCount
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.BranchSummary} "Branches retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /Admin/branches [get]
func (c *AdminController) GetBranches(ctx *gin.Context) {
	summaries, err := c.branchService.ListBranchSummaries(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summaries, ""))
}

// GetBranch returns any branch with all pastors and events
// @Summary Get branch details
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Branch} "Branch retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /Admin/branches/{id} [get]
func (c *AdminController) GetBranch(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Branch")
	if !ok {
		return
	}

	branch, err := c.branchService.GetBranchDetails(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(branch, ""))
}

// CreateBranch adds a branch
// @Summary Create a branch
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BranchRequest true "Branch information"
// @Success 201 {object} dto.APIResponse{data=models.Branch} "Branch created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /Admin/branches [post]
func (c *AdminController) CreateBranch(ctx *gin.Context) {
	createBranch(ctx, c.branchService)
}

// UpdateBranch replaces a branch
// @Summary Update a branch
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID" Format(int64) minimum(1)
// @Param request body dto.BranchRequest true "Branch information"
// @Success 200 {object} dto.APIResponse{data=models.Branch} "Branch updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or ID mismatch"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /Admin/branches/{id} [put]
func (c *AdminController) UpdateBranch(ctx *gin.Context) {
	updateBranch(ctx, c.branchService)
}

// DeleteBranch deletes a branch permanently
// @Summary Delete a branch
// @Description Refused while the branch has active pastors or upcoming events. Its other events become church-wide.
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Branch ID" Format(int64) minimum(1)
// @Success 204 "Branch deleted"
// @Failure 400 {object} dto.ErrorResponse "Branch still has active pastors or upcoming events"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /Admin/branches/{id} [delete]
func (c *AdminController) DeleteBranch(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Branch")
	if !ok {
		return
	}

	if err := c.branchService.PurgeBranch(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetEvents lists events soonest first with branch names
// @Summary List events for the back office
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param branchId query int false "Only events of this branch"
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid branch ID"
// @Router /Admin/events [get]
func (c *AdminController) GetEvents(ctx *gin.Context) {
	var branchID *int64
	if raw := ctx.Query("branchId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid branch ID")
			errorDetail = errorDetail.WithField("branchId").WithDetails("Branch ID must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		branchID = &id
	}

	events, err := c.eventService.ListEventsForAdmin(ctx, branchID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// UpdateEventStatus moves an event to another status
// @Summary Change event status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Param request body dto.EventStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /Admin/events/{id}/status [patch]
func (c *AdminController) UpdateEventStatus(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Event")
	if !ok {
		return
	}

	var req dto.EventStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEventStatus(ctx, id, *req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event status updated"))
}
