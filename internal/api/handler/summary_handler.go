package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/dto"
	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// SummaryHandler serves the read-side monthly rollups.
type SummaryHandler struct {
	summarySvc service.SummaryService
}

// NewSummaryHandler creates the SummaryHandler.
func NewSummaryHandler(summarySvc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc}
}

// Get computes the monthly summary: per-event rollups with valuation, the
// (unit, fund) merge and the per-directorate allocated-versus-executed view.
// GET /api/v1/summaries?month=M&year=Y&...
func (h *SummaryHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}
	if req.Month == 0 || req.Year == 0 {
		response.BadRequest(c, 10001, "month and year are required")
		return
	}

	summary, err := h.summarySvc.Summarize(c.Request.Context(), &req, actor)
	if err != nil {
		if writeHierarchyError(c, err) {
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}
