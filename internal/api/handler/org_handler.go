package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// OrgHandler serves the directorate and unit registry.
type OrgHandler struct {
	orgSvc service.OrgService
}

// NewOrgHandler creates the OrgHandler.
func NewOrgHandler(orgSvc service.OrgService) *OrgHandler {
	return &OrgHandler{orgSvc: orgSvc}
}

// ── directorates ──

// CreateDirectorate registers a directorate.
// POST /api/v1/directorates
func (h *OrgHandler) CreateDirectorate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateDirectorateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	d, err := h.orgSvc.CreateDirectorate(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.Created(c, d)
}

// ListDirectorates returns every directorate.
// GET /api/v1/directorates
func (h *OrgHandler) ListDirectorates(c *gin.Context) {
	list, err := h.orgSvc.ListDirectorates(c.Request.Context())
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// UpdateDirectorate renames a directorate.
// PUT /api/v1/directorates/:id
func (h *OrgHandler) UpdateDirectorate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDirectorateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	d, err := h.orgSvc.UpdateDirectorate(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, d)
}

// DeleteDirectorate removes an empty directorate.
// DELETE /api/v1/directorates/:id
func (h *OrgHandler) DeleteDirectorate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.orgSvc.DeleteDirectorate(c.Request.Context(), id, actor); err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── units ──

// CreateOrgUnit registers a unit.
// POST /api/v1/org-units
func (h *OrgHandler) CreateOrgUnit(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateOrgUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	u, err := h.orgSvc.CreateOrgUnit(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.Created(c, u)
}

// GetOrgUnit returns one unit.
// GET /api/v1/org-units/:id
func (h *OrgHandler) GetOrgUnit(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	u, err := h.orgSvc.GetOrgUnit(c.Request.Context(), id)
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, u)
}

// ListOrgUnits returns units, optionally under one directorate.
// GET /api/v1/org-units?directorate_id=N
func (h *OrgHandler) ListOrgUnits(c *gin.Context) {
	var directorateID uint
	if raw := c.Query("directorate_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, 10001, "invalid directorate_id")
			return
		}
		directorateID = uint(parsed)
	}

	list, err := h.orgSvc.ListOrgUnits(c.Request.Context(), directorateID)
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// UpdateOrgUnit changes a unit's name or directorate attachment.
// PUT /api/v1/org-units/:id
func (h *OrgHandler) UpdateOrgUnit(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrgUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	u, err := h.orgSvc.UpdateOrgUnit(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, u)
}

// DeleteOrgUnit removes a unit.
// DELETE /api/v1/org-units/:id
func (h *OrgHandler) DeleteOrgUnit(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.orgSvc.DeleteOrgUnit(c.Request.Context(), id, actor); err != nil {
		h.handleOrgError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *OrgHandler) handleOrgError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDirectorateNotFound):
		response.NotFound(c, 13001, "directorate not found")
	case errors.Is(err, service.ErrOrgUnitNotFound):
		response.NotFound(c, 13002, "organizational unit not found")
	case errors.Is(err, service.ErrHasChildren):
		response.Conflict(c, 10106, "record still has children")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "operation not allowed for this role or scope")
	default:
		response.InternalError(c)
	}
}
