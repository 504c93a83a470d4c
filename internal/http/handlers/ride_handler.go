// README: Ride lifecycle handlers: booking, driver actions, reschedules, edits.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"overlook/internal/http/middleware"
	"overlook/internal/modules/ride"
	"overlook/internal/types"
)

const roleDriver = "driver"

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(rides *ride.Service) *RideHandler {
	return &RideHandler{rides: rides}
}

type createRideReq struct {
	Pickup      string   `json:"pickup"`
	Dropoff     string   `json:"dropoff"`
	ScheduledAt string   `json:"scheduled_at"`
	RoundTrip   bool     `json:"round_trip"`
	Stops       []string `json:"stops"`
}

func (h *RideHandler) Create(c *gin.Context) {
	var req createRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	scheduledAt, ok := parseTime(c, req.ScheduledAt)
	if !ok {
		return
	}
	r, err := h.rides.Create(c.Request.Context(), ride.CreateCommand{
		RiderID:     types.ID(middleware.CallerUID(c)),
		Pickup:      req.Pickup,
		Dropoff:     req.Dropoff,
		ScheduledAt: scheduledAt,
		RoundTrip:   req.RoundTrip,
		Stops:       req.Stops,
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, rideResponse(r))
}

func (h *RideHandler) Get(c *gin.Context) {
	r, err := h.rides.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rideResponse(r))
}

func (h *RideHandler) Accept(c *gin.Context) {
	if !requireDriver(c) {
		return
	}
	err := h.rides.Accept(c.Request.Context(), ride.AcceptCommand{
		RideID:   types.ID(c.Param("id")),
		DriverID: types.ID(middleware.CallerUID(c)),
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": ride.StatusAccepted})
}

func (h *RideHandler) Deny(c *gin.Context) {
	if !requireDriver(c) {
		return
	}
	err := h.rides.Deny(c.Request.Context(), ride.DenyCommand{
		RideID:   types.ID(c.Param("id")),
		DriverID: types.ID(middleware.CallerUID(c)),
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": ride.StatusDenied})
}

func (h *RideHandler) Cancel(c *gin.Context) {
	err := h.rides.Cancel(c.Request.Context(), ride.CancelCommand{
		RideID:    types.ID(c.Param("id")),
		Requester: types.ID(middleware.CallerUID(c)),
		Driver:    middleware.CallerRole(c) == roleDriver,
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": ride.StatusCancelled})
}

func (h *RideHandler) Complete(c *gin.Context) {
	if !requireDriver(c) {
		return
	}
	err := h.rides.Complete(c.Request.Context(), ride.CompleteCommand{
		RideID:   types.ID(c.Param("id")),
		DriverID: types.ID(middleware.CallerUID(c)),
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": ride.StatusCompleted})
}

type rescheduleReq struct {
	NewTime string `json:"new_time"`
}

func (h *RideHandler) RescheduleQuote(c *gin.Context) {
	var req rescheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	newTime, ok := parseTime(c, req.NewTime)
	if !ok {
		return
	}
	fee, err := h.rides.RescheduleQuote(c.Request.Context(), types.ID(c.Param("id")), types.ID(middleware.CallerUID(c)), newTime)
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"reschedule_fee": fee})
}

func (h *RideHandler) Reschedule(c *gin.Context) {
	var req rescheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	newTime, ok := parseTime(c, req.NewTime)
	if !ok {
		return
	}
	r, err := h.rides.Reschedule(c.Request.Context(), ride.RescheduleCommand{
		RideID:    types.ID(c.Param("id")),
		Requester: types.ID(middleware.CallerUID(c)),
		NewTime:   newTime,
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rideResponse(r))
}

type driverFareReq struct {
	RequestedTotal float64 `json:"requested_total"`
}

// SetFare lets the assigned driver raise the total; the service turns the
// target into a bounded add-on component.
func (h *RideHandler) SetFare(c *gin.Context) {
	if !requireDriver(c) {
		return
	}
	var req driverFareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.rides.SetDriverFare(c.Request.Context(), ride.DriverFareCommand{
		RideID:         types.ID(c.Param("id")),
		DriverID:       types.ID(middleware.CallerUID(c)),
		RequestedTotal: req.RequestedTotal,
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rideResponse(r))
}

type editRideReq struct {
	Pickup      *string            `json:"pickup"`
	Dropoff     *string            `json:"dropoff"`
	ScheduledAt *string            `json:"scheduled_at"`
	Fees        map[string]float64 `json:"fees"`
}

func (h *RideHandler) Edit(c *gin.Context) {
	var req editRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := ride.EditCommand{
		RideID:    types.ID(c.Param("id")),
		Requester: types.ID(middleware.CallerUID(c)),
		Driver:    middleware.CallerRole(c) == roleDriver,
		Pickup:    req.Pickup,
		Dropoff:   req.Dropoff,
		Fees:      req.Fees,
	}
	if req.ScheduledAt != nil {
		t, ok := parseTime(c, *req.ScheduledAt)
		if !ok {
			return
		}
		cmd.ScheduledAt = &t
	}
	r, err := h.rides.Edit(c.Request.Context(), cmd)
	if err != nil {
		writeRideError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rideResponse(r))
}

func requireDriver(c *gin.Context) bool {
	if middleware.CallerRole(c) != roleDriver {
		writeError(c, http.StatusForbidden, "driver role required")
		return false
	}
	return true
}

func rideResponse(r *ride.Ride) gin.H {
	return gin.H{
		"ride_id":          r.ID,
		"status":           r.Status,
		"pickup":           r.Pickup,
		"dropoff":          r.Dropoff,
		"stops":            r.Stops,
		"round_trip":       r.RoundTrip,
		"scheduled_at":     r.ScheduledAt.Format(time.RFC3339),
		"fees":             r.Fees,
		"fare":             r.Fare,
		"duration_minutes": r.DurationMinutes,
		"is_revised":       r.IsRevised,
	}
}
