package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain failure kinds onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrConflictingSchedule),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrFlightInUse),
		errors.Is(err, domain.ErrDuplicateBooking):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidReferenceDate):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
