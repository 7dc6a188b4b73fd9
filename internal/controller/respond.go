package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/portalpnd/simulado-api/internal/apperr"
	"github.com/portalpnd/simulado-api/internal/dto"
)

// RespondError translates the error taxonomy into an HTTP status with the
// uniform error body. Unrecognized errors are treated as internal.
func RespondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrStorage):
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// ParseUintParam reads a numeric path parameter, e.g. attempt_id.
func ParseUintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
