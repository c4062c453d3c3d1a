package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// EventHandler serves a unit's monthly quota events.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates the EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// Create opens an event under a distribution.
// POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// Get returns one event with its consumption rollup.
// GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	usage, err := h.eventSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, usage)
}

// List returns events matching the filters, scoped to the caller.
// GET /api/v1/events?month=M&year=Y&...
func (h *EventHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.eventSvc.List(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Update changes an event's mutable fields.
// PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// SetStatus moves the event through the workflow.
// PATCH /api/v1/events/:id/status
func (h *EventHandler) SetStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	event, err := h.eventSvc.TransitionStatus(c.Request.Context(), id, model.WorkflowStatus(req.Status), actor)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// HomologateMonth closes every non-homologated event of a month in one step.
// POST /api/v1/events/homologate-month
func (h *EventHandler) HomologateMonth(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.HomologateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	n, err := h.eventSvc.HomologateMonth(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, dto.HomologateMonthResponse{Homologated: n})
}

// Delete removes an event with no operations.
// DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	if writeHierarchyError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 16001, "event not found")
	case errors.Is(err, service.ErrDistributionNotFound):
		response.NotFound(c, 15001, "distribution not found")
	default:
		response.InternalError(c)
	}
}
