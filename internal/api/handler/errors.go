package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/caadpo/genesis-backend/internal/service"
	"github.com/caadpo/genesis-backend/pkg/response"
)

// writeHierarchyError maps the business errors shared by every level of the
// quota hierarchy. Returns false when the error is not one of them, so the
// caller can handle its module-specific sentinels and fall through to a 500.
func writeHierarchyError(c *gin.Context, err error) bool {
	var quotaErr *service.QuotaExceededError
	var floorErr *service.BelowConsumedError

	switch {
	case errors.As(err, &quotaErr):
		response.UnprocessableEntity(c, 10101, quotaErr.Error())
	case errors.As(err, &floorErr):
		response.UnprocessableEntity(c, 10102, floorErr.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "operation not allowed for this role or scope")
	case errors.Is(err, service.ErrFrozen):
		response.Conflict(c, 10103, "record is homologated and can no longer change")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 10104, "workflow status can only move forward")
	case errors.Is(err, service.ErrParentChange):
		response.UnprocessableEntity(c, 10105, "a record cannot move to another parent")
	case errors.Is(err, service.ErrHasChildren):
		response.Conflict(c, 10106, "record still has children")
	case errors.Is(err, service.ErrLateEvent):
		response.Forbidden(c, 10107, "late events require a privileged role")
	default:
		return false
	}
	return true
}
