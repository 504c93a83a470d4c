// README: Fare preview handlers.
package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"overlook/internal/modules/pricing"
)

type FareHandler struct {
	fares *pricing.Service
}

func NewFareHandler(fares *pricing.Service) *FareHandler {
	return &FareHandler{fares: fares}
}

type quoteReq struct {
	Pickup      string   `json:"pickup"`
	Dropoff     string   `json:"dropoff"`
	RequestedAt string   `json:"requested_at"`
	RoundTrip   bool     `json:"round_trip"`
	Stops       []string `json:"stops"`
}

// Quote prices a trip without booking it. The transport flags tell the
// booking UI whether to offer the two-leg round-trip flow.
func (h *FareHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	requestedAt, ok := parseTime(c, req.RequestedAt)
	if !ok {
		return
	}
	est, err := h.fares.TripEstimate(c.Request.Context(), pricing.TripRequest{
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		RequestedAt: requestedAt,
		RoundTrip:   req.RoundTrip,
		Stops:       req.Stops,
	})
	if err != nil {
		log.Printf("fare quote failed: %v", err)
		writeFareError(c, err)
		return
	}
	cfg := h.fares.Config()
	writeJSON(c, http.StatusOK, gin.H{
		"fare":              est.Fare,
		"duration_minutes":  est.Quote.DurationMinutes,
		"transport_pickup":  cfg.IsTransportLocation(req.Pickup),
		"transport_dropoff": cfg.IsTransportLocation(req.Dropoff),
	})
}

type transportRoundTripReq struct {
	quoteReq
	ReturnAt string `json:"return_at"`
}

// TransportRoundTrip prices a hub round trip as two one-way legs. The caller
// books each leg as its own ride.
func (h *FareHandler) TransportRoundTrip(c *gin.Context) {
	var req transportRoundTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	requestedAt, ok := parseTime(c, req.RequestedAt)
	if !ok {
		return
	}
	returnAt, ok := parseTime(c, req.ReturnAt)
	if !ok {
		return
	}
	fare, err := h.fares.TransportRoundTripFare(c.Request.Context(), pricing.TripRequest{
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		RequestedAt: requestedAt,
		Stops:       req.Stops,
	}, returnAt)
	if err != nil {
		log.Printf("round trip quote failed: %v", err)
		writeFareError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, fare)
}

func parseTime(c *gin.Context, v string) (time.Time, bool) {
	if v == "" {
		writeError(c, http.StatusBadRequest, "missing timestamp")
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		writeError(c, http.StatusBadRequest, "timestamps must be RFC 3339")
		return time.Time{}, false
	}
	return t, true
}
