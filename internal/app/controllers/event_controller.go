package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voiceofchrist/churchsite/internal/app/models/dto"
	"github.com/voiceofchrist/churchsite/internal/app/services"
	"github.com/voiceofchrist/churchsite/internal/middleware"
)

// EventController handles event endpoints
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// GetEvents lists every event
// @Summary List events
// @Description Lists all events, latest first
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	events, err := c.eventService.GetEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// GetUpcomingEvents lists scheduled events that have not started
// @Summary List upcoming events
// @Description Upcoming events dated now or later, soonest first
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events/upcoming [get]
func (c *EventController) GetUpcomingEvents(ctx *gin.Context) {
	events, err := c.eventService.GetUpcomingEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// GetPastEvents lists completed or already dated events
// @Summary List past events
// @Description Completed events and events dated before now, latest first
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events/past [get]
func (c *EventController) GetPastEvents(ctx *gin.Context) {
	events, err := c.eventService.GetPastEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// GetEventsByYear lists the events of a calendar year
// @Summary List events of a year
// @Tags events
// @Produce json
// @Param year path int true "Year" minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events/year/{year} [get]
func (c *EventController) GetEventsByYear(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year")
		errorDetail = errorDetail.WithField("year").WithDetails("Year must be a number between 1 and 9999")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	events, err := c.eventService.GetEventsByYear(ctx, year)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// GetEvent retrieves an event by ID
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID format"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Event")
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, ""))
}

// CreateEvent handles event creation
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or inactive branch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.EventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created successfully"))
}

// UpdateEvent replaces an event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Param request body dto.EventRequest true "Event information"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data, ID mismatch or inactive branch"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Event")
	if !ok {
		return
	}

	var req dto.EventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if middleware.RejectIDMismatch(ctx, id, req.ID) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event updated successfully"))
}

// DeleteEvent removes an event
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 204 "Event deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /Events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id", "Event")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
