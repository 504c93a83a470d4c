// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"overlook/internal/maps"
	"overlook/internal/modules/pricing"
	"overlook/internal/modules/ride"
)

// noRouteMessage is what riders see when the provider has no path for the
// chosen date and time; it must stay distinct from generic failures.
const noRouteMessage = "no route could be found for the selected date and time"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeRideError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ride.ErrBadRequest), errors.Is(err, pricing.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ride.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ride.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ride.ErrInvalidState):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusUnprocessableEntity, noRouteMessage)
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// writeFareError keeps the opaque message specific to fare computation.
func writeFareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pricing.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusUnprocessableEntity, noRouteMessage)
	default:
		writeError(c, http.StatusInternalServerError, "failed to calculate fare, please try again")
	}
}
