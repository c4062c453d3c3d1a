package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// CeilingHandler serves the monthly funding-line quota pools.
type CeilingHandler struct {
	ceilingSvc service.CeilingService
}

// NewCeilingHandler creates the CeilingHandler.
func NewCeilingHandler(ceilingSvc service.CeilingService) *CeilingHandler {
	return &CeilingHandler{ceilingSvc: ceilingSvc}
}

// Create opens a ceiling for a (fund code, month, year).
// POST /api/v1/ceilings
func (h *CeilingHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateCeilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ceiling, err := h.ceilingSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.Created(c, ceiling)
}

// Get returns one ceiling with its allocation rollup.
// GET /api/v1/ceilings/:id
func (h *CeilingHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	usage, err := h.ceilingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.OK(c, usage)
}

// List returns the month's ceilings visible to the caller.
// GET /api/v1/ceilings?month=M&year=Y
func (h *CeilingHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "month and year are required")
		return
	}

	list, err := h.ceilingSvc.List(c.Request.Context(), q.Month, q.Year, actor)
	if err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Update resizes the ceiling counters.
// PUT /api/v1/ceilings/:id
func (h *CeilingHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCeilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ceiling, err := h.ceilingSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.OK(c, ceiling)
}

// SetSubmissionStatus flags whether the ceiling was reported upstream.
// PATCH /api/v1/ceilings/:id/submission-status
func (h *CeilingHandler) SetSubmissionStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.SetSubmissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ceiling, err := h.ceilingSvc.SetSubmissionStatus(c.Request.Context(), id, model.SubmissionStatus(req.Status), actor)
	if err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.OK(c, ceiling)
}

// SetPaymentStatus flags whether the month was paid out.
// PATCH /api/v1/ceilings/:id/payment-status
func (h *CeilingHandler) SetPaymentStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	ceiling, err := h.ceilingSvc.SetPaymentStatus(c.Request.Context(), id, model.PaymentStatus(req.PaymentStatus), actor)
	if err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.OK(c, ceiling)
}

// Delete removes a ceiling with no distributions.
// DELETE /api/v1/ceilings/:id
func (h *CeilingHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.ceilingSvc.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleCeilingError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *CeilingHandler) handleCeilingError(c *gin.Context, err error) {
	if writeHierarchyError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCeilingNotFound):
		response.NotFound(c, 14001, "ceiling not found")
	case errors.Is(err, service.ErrCeilingExists):
		response.Conflict(c, 14002, "a ceiling already exists for this fund code, month and year")
	default:
		response.InternalError(c)
	}
}
