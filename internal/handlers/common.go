package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iffypixy/metaorta/internal/services"
	"github.com/iffypixy/metaorta/pkg/response"
)

// respondError maps a lifecycle error to the HTTP contract. Business
// sentinels get their status; anything else is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrSlotOccupied),
		errors.Is(err, services.ErrDuplicateRequest):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrInvalidStatus):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
