package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler serves roster downloads by operation public code.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// RosterXLSX downloads the operation roster as a spreadsheet.
// GET /api/v1/export/roster/:code/xlsx
func (h *ExportHandler) RosterXLSX(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "missing code")
		return
	}

	buf, filename, err := h.exportSvc.RosterXLSX(c.Request.Context(), code)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// RosterICS downloads the operation roster as an iCalendar feed.
// GET /api/v1/export/roster/:code/ics
func (h *ExportHandler) RosterICS(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "missing code")
		return
	}

	buf, filename, err := h.exportSvc.RosterICS(c.Request.Context(), code)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, icsContentType, filename, buf.Bytes())
}

func writeDownload(c *gin.Context, contentType, filename string, body []byte) {
	encoded := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encoded)
	c.Data(http.StatusOK, contentType, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOperationNotFound):
		response.NotFound(c, 17001, "operation not found")
	case errors.Is(err, service.ErrExportNoEntries):
		response.NotFound(c, 19001, "the roster has no schedule entries")
	default:
		response.InternalError(c)
	}
}
