package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// ScheduleEntryHandler serves the per-person roster lines.
type ScheduleEntryHandler struct {
	entrySvc service.ScheduleEntryService
}

// NewScheduleEntryHandler creates the ScheduleEntryHandler.
func NewScheduleEntryHandler(entrySvc service.ScheduleEntryService) *ScheduleEntryHandler {
	return &ScheduleEntryHandler{entrySvc: entrySvc}
}

// Create puts a person on an operation's roster.
// POST /api/v1/schedule-entries
func (h *ScheduleEntryHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	entry, err := h.entrySvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, entry)
}

// Get returns one entry, comments included.
// GET /api/v1/schedule-entries/:id
func (h *ScheduleEntryHandler) Get(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	entry, err := h.entrySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// ListByOperation returns an operation's roster.
// GET /api/v1/operations/:id/schedule-entries
func (h *ScheduleEntryHandler) ListByOperation(c *gin.Context) {
	operationID, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	list, err := h.entrySvc.ListByOperation(c.Request.Context(), operationID)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListPersonal is the "my schedule" view across operations.
// GET /api/v1/schedule-entries/personal?service_number=N&month=M&year=Y
func (h *ScheduleEntryHandler) ListPersonal(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.PersonalScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "service_number, month and year are required")
		return
	}

	list, err := h.entrySvc.ListPersonal(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// PersonalQuota totals one person's consumed quota for a month.
// GET /api/v1/schedule-entries/personal/quota?service_number=N&month=M&year=Y
func (h *ScheduleEntryHandler) PersonalQuota(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.PersonalScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "service_number, month and year are required")
		return
	}

	quota, err := h.entrySvc.PersonalQuota(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, quota)
}

// Update changes an entry's mutable fields. Person type is immutable.
// PUT /api/v1/schedule-entries/:id
func (h *ScheduleEntryHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	entry, err := h.entrySvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// SetStatus moves the entry through the workflow.
// PATCH /api/v1/schedule-entries/:id/status
func (h *ScheduleEntryHandler) SetStatus(c *gin.Context) {
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

	entry, err := h.entrySvc.TransitionStatus(c.Request.Context(), id, model.WorkflowStatus(req.Status), actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// SetObs annotates the entry; an empty obs clears it.
// PUT /api/v1/schedule-entries/:id/obs
func (h *ScheduleEntryHandler) SetObs(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.SetObsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	entry, err := h.entrySvc.SetObs(c.Request.Context(), id, req.Obs, actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, entry)
}

// Delete removes an entry, releasing its quota.
// DELETE /api/v1/schedule-entries/:id
func (h *ScheduleEntryHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	if err := h.entrySvc.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── comments ──

// AddComment appends a comment on the entry.
// POST /api/v1/schedule-entries/:id/comments
func (h *ScheduleEntryHandler) AddComment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	comment, err := h.entrySvc.AddComment(c.Request.Context(), id, req.Text, actor)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, comment)
}

// ListComments returns the entry's comments, oldest first.
// GET /api/v1/schedule-entries/:id/comments
func (h *ScheduleEntryHandler) ListComments(c *gin.Context) {
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}

	comments, err := h.entrySvc.ListComments(c.Request.Context(), id)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": comments})
}

// DeleteComment removes a comment, author or privileged roles only.
// DELETE /api/v1/schedule-entries/:id/comments/:comment_id
func (h *ScheduleEntryHandler) DeleteComment(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := MustParamID(c, "id")
	if !ok {
		return
	}
	commentID, ok := MustParamID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.entrySvc.DeleteComment(c.Request.Context(), id, commentID, actor); err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ScheduleEntryHandler) handleEntryError(c *gin.Context, err error) {
	if writeHierarchyError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 18001, "schedule entry not found")
	case errors.Is(err, service.ErrOperationNotFound):
		response.NotFound(c, 17001, "operation not found")
	case errors.Is(err, service.ErrEntryWindow):
		response.UnprocessableEntity(c, 18002, "the shift must end after it starts")
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, 18003, "comment not found")
	default:
		response.InternalError(c)
	}
}
