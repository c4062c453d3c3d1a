package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// OperationHandler serves the concrete duty assignments under an event.
type OperationHandler struct {
	opSvc service.OperationService
}

// NewOperationHandler creates the OperationHandler.
func NewOperationHandler(opSvc service.OperationService) *OperationHandler {
	return &OperationHandler{opSvc: opSvc}
}

// Create opens an operation under an event. The public code is generated
// server-side.
// POST /api/v1/operations
func (h *OperationHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	op, err := h.opSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.Created(c, op)
}

// Get returns one operation with its consumption rollup.
// GET /api/v1/operations/:id
func (h *OperationHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	usage, err := h.opSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.OK(c, usage)
}

// GetByCode resolves an operation by its public code, entries included. The
// code is shareable: printed on rosters and embedded in exports.
// GET /api/v1/operations/code/:code
func (h *OperationHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "missing code")
		return
	}

	op, err := h.opSvc.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.OK(c, op)
}

// ListByEvent returns an event's operations.
// GET /api/v1/events/:id/operations
func (h *OperationHandler) ListByEvent(c *gin.Context) {
	eventID, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	list, err := h.opSvc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Update changes an operation's mutable fields.
// PUT /api/v1/operations/:id
func (h *OperationHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	op, err := h.opSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.OK(c, op)
}

// SetStatus moves the operation through the workflow.
// PATCH /api/v1/operations/:id/status
func (h *OperationHandler) SetStatus(c *gin.Context) {
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

	op, err := h.opSvc.TransitionStatus(c.Request.Context(), id, model.WorkflowStatus(req.Status), actor)
	if err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.OK(c, op)
}

// Delete removes an operation with no schedule entries.
// DELETE /api/v1/operations/:id
func (h *OperationHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.opSvc.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleOperationError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *OperationHandler) handleOperationError(c *gin.Context, err error) {
	if writeHierarchyError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrOperationNotFound):
		response.NotFound(c, 17001, "operation not found")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 16001, "event not found")
	case errors.Is(err, service.ErrCodeExhausted):
		response.Conflict(c, 17002, "could not allocate a unique public code, retry")
	default:
		response.InternalError(c)
	}
}
