package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hopebridge/eventhub/internal/app/models"
	"github.com/hopebridge/eventhub/internal/app/models/dto"
	"github.com/hopebridge/eventhub/internal/app/services"
	"github.com/hopebridge/eventhub/internal/middleware"
	"github.com/hopebridge/eventhub/internal/pkg/apperrors"
)

// EventController handles event related operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidInputError("Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// GetUpcomingEvents handles listing active events that have not passed
// @Summary Get upcoming events
// @Description Retrieves active events dated today or later. Past events are deactivated before listing.
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) GetUpcomingEvents(ctx *gin.Context) {
	events, err := c.eventService.GetUpcomingEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetPastEvents handles listing events whose date has passed
// @Summary Get past events
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/past [get]
func (c *EventController) GetPastEvents(ctx *gin.Context) {
	events, err := c.eventService.GetPastEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEvent handles retrieving a single event with its gallery
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	event, err := c.eventService.GetEventByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// GetAllEvents handles the admin listing of every event
// @Summary Get all events
// @Description Retrieves every event regardless of status. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	events, err := c.eventService.GetAllEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// CreateEvent handles creating a new event
// @Summary Create event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /admin/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// UpdateEvent handles updating an event's details
// @Summary Update event
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event details"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEventStatus handles toggling an event between Active and Inactive
// @Summary Update event status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse "Status updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/status [put]
func (c *EventController) UpdateEventStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.eventService.UpdateEventStatus(ctx.Request.Context(), id, models.EventStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event status updated"))
}

// DeleteEvent handles removing an event
// @Summary Delete event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Event deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.DeleteEvent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted"))
}

// JoinEvent handles registering the caller for an event
// @Summary Join event
// @Description Registers the authenticated user for an event with a member count. Fails when the event is inactive, already joined, or the member count exceeds remaining capacity.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.JoinEventRequest true "Member count"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Joined successfully"
// @Failure 409 {object} dto.ErrorResponse "Already registered, event full, or not joinable"
// @Router /events/{id}/join [post]
func (c *EventController) JoinEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.JoinEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.JoinEvent(ctx.Request.Context(), id, userID, req.Members)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// SetReminder handles setting the reminder lead time on the caller's
// registration
// @Summary Set event reminder
// @Description Chooses how many hours before the event the one-time reminder is sent. Omitting hoursBefore selects the default lead time.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.SetReminderRequest true "Reminder lead time"
// @Success 200 {object} dto.APIResponse "Reminder scheduled"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Router /events/{id}/reminder [post]
func (c *EventController) SetReminder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.SetReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.eventService.SetReminder(ctx.Request.Context(), id, userID, req.HoursBefore); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Reminder scheduled"))
}

// GetUserEvents handles listing the caller's joined events
// @Summary Get my events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserEventResponse} "Events retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /user/events [get]
func (c *EventController) GetUserEvents(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	events, err := c.eventService.GetUserEvents(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEventRegistrations handles the admin listing of an event's registrants
// @Summary Get event registrations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RegistrantResponse} "Registrations retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/registrations [get]
func (c *EventController) GetEventRegistrations(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	registrations, err := c.eventService.GetEventRegistrations(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(registrations))
}

// AddGalleryImage handles an attendee contributing a gallery image
// @Summary Add gallery image
// @Description Appends a gallery image to a past event. Only registrants of the event may contribute, and only after the event's date has passed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.GalleryImageRequest true "Image URL"
// @Success 200 {object} dto.APIResponse "Image added"
// @Failure 403 {object} dto.ErrorResponse "Event not past yet or caller is not an attendee"
// @Router /events/{id}/gallery [post]
func (c *EventController) AddGalleryImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.GalleryImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.eventService.AddGalleryImage(ctx.Request.Context(), id, userID, req.URL); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Image added to gallery"))
}

// AddGalleryImageAdmin handles an admin adding a gallery image to any event
// @Summary Add gallery image (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.GalleryImageRequest true "Image URL"
// @Success 200 {object} dto.APIResponse "Image added"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/gallery [post]
func (c *EventController) AddGalleryImageAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.GalleryImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.eventService.AddGalleryImageAdmin(ctx.Request.Context(), id, req.URL); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Image added to gallery"))
}

// RemoveGalleryImageAdmin handles an admin removing a gallery image
// @Summary Remove gallery image (admin)
// @Description Removes one occurrence of the URL from the event's gallery. Removing a URL that is not present succeeds without effect.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.GalleryImageRequest true "Image URL"
// @Success 200 {object} dto.APIResponse "Image removed"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/gallery [delete]
func (c *EventController) RemoveGalleryImageAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.GalleryImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.eventService.RemoveGalleryImageAdmin(ctx.Request.Context(), id, req.URL); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Image removed from gallery"))
}
