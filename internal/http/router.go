// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"overlook/internal/http/handlers"
	"overlook/internal/http/middleware"
	"overlook/internal/infra"
	"overlook/internal/modules/pricing"
	"overlook/internal/modules/ride"
)

func NewRouter(
	verifier infra.TokenVerifier,
	fareService *pricing.Service,
	rideService *ride.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(verifier))

	fareHandler := handlers.NewFareHandler(fareService)
	api.POST("/fares/quote", fareHandler.Quote)
	api.POST("/fares/transport-roundtrip", fareHandler.TransportRoundTrip)

	rideHandler := handlers.NewRideHandler(rideService)
	api.POST("/rides", rideHandler.Create)
	api.GET("/rides/:id", rideHandler.Get)
	api.PATCH("/rides/:id", rideHandler.Edit)
	api.POST("/rides/:id/accept", rideHandler.Accept)
	api.POST("/rides/:id/deny", rideHandler.Deny)
	api.POST("/rides/:id/cancel", rideHandler.Cancel)
	api.POST("/rides/:id/complete", rideHandler.Complete)
	api.POST("/rides/:id/reschedule", rideHandler.Reschedule)
	api.POST("/rides/:id/reschedule-quote", rideHandler.RescheduleQuote)
	api.POST("/rides/:id/fare", rideHandler.SetFare)

	return r
}
