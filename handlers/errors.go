package handlers

import (
	"context"
	"errors"
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/user"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP status codes. Lifecycle errors
// carry their kind and whether the client may retry unchanged.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLogger(c)

	var lerr *booking.Error
	if errors.As(err, &lerr) {
		status := http.StatusInternalServerError
		switch lerr.Kind {
		case booking.KindValidation:
			status = http.StatusBadRequest
		case booking.KindPrecondition:
			status = http.StatusConflict
		case booking.KindNotFound:
			status = http.StatusNotFound
		case booking.KindGateway:
			status = http.StatusServiceUnavailable
		}
		if status >= http.StatusInternalServerError {
			logger.Error("booking operation failed", zap.String("op", lerr.Op), zap.Error(err))
		} else {
			logger.Debug("booking operation rejected", zap.String("op", lerr.Op), zap.Error(err))
		}
		c.AbortWithStatusJSON(status, utils.ErrorResponse{
			Message:   lerr.Message,
			Code:      lerr.Kind.String(),
			Retryable: lerr.Retryable(),
		})
		return
	}

	var verr user.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{Message: verr.Error(), Code: "validation"})
	case errors.Is(err, user.ErrUserExists):
		c.AbortWithStatusJSON(http.StatusConflict, utils.ErrorResponse{Message: err.Error(), Code: "conflict"})
	case errors.Is(err, user.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: err.Error(), Code: "unauthorized"})
	case errors.Is(err, user.ErrSuspended):
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: err.Error(), Code: "suspended"})
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrServiceNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, utils.ErrorResponse{Message: err.Error(), Code: "not_found"})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("store lookup timed out", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.ErrorResponse{
			Message:   "store did not respond in time",
			Code:      booking.KindGateway.String(),
			Retryable: true,
		})
	default:
		logger.Error("request failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message:   "Internal Server Error",
			Retryable: true,
		})
	}
}

// currentActor returns the authenticated actor or aborts with 401.
func currentActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
	}
	return actor, ok
}
