package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avdonin/skybooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps the domain error taxonomy onto HTTP. A sold-out flight is a
// 409, a normal outcome for the caller, never a 5xx.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrSeatsUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// currentUserID reads the authenticated user from the X-User-ID header. The
// auth layer in front of this service is responsible for setting it.
func currentUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
		return 0, false
	}
	return id, true
}
