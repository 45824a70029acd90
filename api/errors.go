package api

import (
	"errors"
	"net/http"

	"github.com/Abhijith12371/InfosysProject/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain sentinel errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrSeatNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSeatUnavailable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrFlightDeparted),
		errors.Is(err, domain.ErrNoSeatsLeft):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
