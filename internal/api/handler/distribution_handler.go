package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// DistributionHandler serves the directorate slices of a ceiling.
type DistributionHandler struct {
	distSvc service.DistributionService
}

// NewDistributionHandler creates the DistributionHandler.
func NewDistributionHandler(distSvc service.DistributionService) *DistributionHandler {
	return &DistributionHandler{distSvc: distSvc}
}

// Create slices part of a ceiling to a directorate.
// POST /api/v1/distributions
func (h *DistributionHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	dist, err := h.distSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleDistributionError(c, err)
		return
	}

	response.Created(c, dist)
}

// Get returns one distribution with its consumption rollup.
// GET /api/v1/distributions/:id
func (h *DistributionHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	usage, err := h.distSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleDistributionError(c, err)
		return
	}

	response.OK(c, usage)
}

// List returns distributions visible to the caller.
// GET /api/v1/distributions?month=M&year=Y&fund_code=F&directorate_id=D
func (h *DistributionHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.DistributionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, err := h.distSvc.List(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleDistributionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Update changes a distribution's mutable fields.
// PUT /api/v1/distributions/:id
func (h *DistributionHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	dist, err := h.distSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleDistributionError(c, err)
		return
	}

	response.OK(c, dist)
}

// Delete removes a distribution with no events.
// DELETE /api/v1/distributions/:id
func (h *DistributionHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.distSvc.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleDistributionError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *DistributionHandler) handleDistributionError(c *gin.Context, err error) {
	if writeHierarchyError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrDistributionNotFound):
		response.NotFound(c, 15001, "distribution not found")
	case errors.Is(err, service.ErrCeilingNotFound):
		response.NotFound(c, 14001, "ceiling not found")
	default:
		response.InternalError(c)
	}
}
