package controller

import (
	"errors"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// List godoc
// @Summary List events
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "parent_meeting or class_competition"
// @Param class_id query int false "Filter by class"
// @Param upcoming query bool false "Only upcoming active events"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	classID, _ := strconv.ParseUint(ctx.Query("class_id"), 10, 64)
	upcoming, _ := strconv.ParseBool(ctx.DefaultQuery("upcoming", "false"))

	events, total, err := c.EventService.List(service.EventFilter{
		Type:         model.EventType(ctx.Query("type")),
		ClassID:      uint(classID),
		UpcomingOnly: upcoming,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: events, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 200 {object} util.Response{data=model.Event}
// @Failure 404 {object} util.Response
// @Router /api/events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}
	event, err := c.EventService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, event)
}

// swagger:model EventRequest
type EventRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Type            string `json:"type" binding:"required,oneof=parent_meeting class_competition"`
	EventDate       string `json:"event_date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	Location        string `json:"location"`
	MaxParticipants int    `json:"max_participants"`
	ClassID         *uint  `json:"class_id"`
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EventRequest true "Event details"
// @Success 201 {object} util.Response{data=model.Event}
// @Failure 400 {object} util.Response
// @Router /api/events [post]
func (c *EventController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eventDate, err := time.Parse(util.DateFormat, req.EventDate)
	if err != nil {
		util.BadRequest(ctx, "event_date must be YYYY-MM-DD")
		return
	}

	event := &model.Event{
		Title:           req.Title,
		Description:     req.Description,
		Type:            model.EventType(req.Type),
		EventDate:       eventDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		CreatedBy:       claims.UserID,
		MaxParticipants: req.MaxParticipants,
		Status:          model.EventActive,
		ClassID:         req.ClassID,
	}
	if err := c.EventService.Create(event); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// Update godoc
// @Summary Update an event
// @Description The event's creator or a school admin may update it.
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event details"
// @Success 200 {object} util.Response{data=model.Event}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}
	event, err := c.EventService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if event.CreatedBy != claims.UserID && !claims.Role.IsAdmin() {
		util.Forbidden(ctx)
		return
	}

	var req EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	eventDate, err := time.Parse(util.DateFormat, req.EventDate)
	if err != nil {
		util.BadRequest(ctx, "event_date must be YYYY-MM-DD")
		return
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Type = model.EventType(req.Type)
	event.EventDate = eventDate
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Location = req.Location
	event.MaxParticipants = req.MaxParticipants
	event.ClassID = req.ClassID
	if err := c.EventService.Update(event); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, event)
}

// Cancel godoc
// @Summary Cancel an event
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/events/{id}/cancel [post]
func (c *EventController) Cancel(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}
	if err := c.EventService.Cancel(uint(id)); err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// swagger:model BookingRequest
type BookingRequest struct {
	StudentID *uint  `json:"student_id"`
	TimeSlot  string `json:"time_slot"`
	Notes     string `json:"notes"`
}

// Book godoc
// @Summary Book a spot at an event
// @Tags events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Param body body BookingRequest true "Booking details"
// @Success 201 {object} util.Response{data=model.EventBooking}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/events/{id}/bookings [post]
func (c *EventController) Book(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}

	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	booking := &model.EventBooking{
		StudentID: req.StudentID,
		Notes:     req.Notes,
	}
	if req.TimeSlot != "" {
		slot, err := time.Parse(util.TimeFormat, req.TimeSlot)
		if err != nil {
			util.BadRequest(ctx, "time_slot must be YYYY-MM-DD HH:MM:SS")
			return
		}
		booking.TimeSlot = &slot
	}

	booking, err = c.EventService.Book(uint(id), claims.UserID, booking)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEventNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyBooked), errors.Is(err, util.ErrEventFull):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, booking)
}

// Bookings godoc
// @Summary List an event's bookings
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Event ID"
// @Success 200 {object} util.Response{data=[]model.EventBooking}
// @Router /api/events/{id}/bookings [get]
func (c *EventController) Bookings(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid event id")
		return
	}
	bookings, err := c.EventService.Bookings(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, bookings)
}

// MyBookings godoc
// @Summary Current user's bookings
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.EventBooking}
// @Router /api/bookings [get]
func (c *EventController) MyBookings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	bookings, err := c.EventService.UserBookings(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, bookings)
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/bookings/{id} [delete]
func (c *EventController) CancelBooking(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid booking id")
		return
	}
	err = c.EventService.CancelBooking(uint(id), claims.UserID, claims.Role.IsStaff())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEventNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ConfirmBooking godoc
// @Summary Confirm a booking
// @Tags events
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} util.Response
// @Router /api/bookings/{id}/confirm [post]
func (c *EventController) ConfirmBooking(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid booking id")
		return
	}
	if err := c.EventService.ConfirmBooking(uint(id)); err != nil {
		if errors.Is(err, util.ErrEventNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
