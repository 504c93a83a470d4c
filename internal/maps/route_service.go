package maps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"googlemaps.github.io/maps"
)

// HomeBaseSentinel is the reserved origin/destination placeholder that the
// adapter swaps for the real home-base address before calling the provider.
const HomeBaseSentinel = "__WOODSTOCK__"

const metersPerMile = 1609.344

var (
	// ErrNoRoute means the provider found no path for the given parameters.
	// Callers turn this into a "no route for that date and time" message.
	ErrNoRoute = errors.New("no route found")
	// ErrMissingAPIKey means the provider credential is absent. Fatal, not retried.
	ErrMissingAPIKey = errors.New("maps api key is not configured")
)

// RouteQuote is a normalized distance/duration pair for one routed trip.
type RouteQuote struct {
	Miles           float64
	DurationMinutes int
}

// RouteService handles interactions with the Google Maps Directions API.
type RouteService struct {
	client   *maps.Client
	homeBase string
}

// NewRouteService creates a RouteService with the given API key and the
// decrypted home-base address used to resolve HomeBaseSentinel.
func NewRouteService(apiKey, homeBase string) (*RouteService, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client, homeBase: homeBase}, nil
}

// GetRoute returns the driving distance and duration from origin to
// destination, routed through stops in order, departing at departAt.
// It assumes driving mode.
func (s *RouteService) GetRoute(ctx context.Context, origin, destination string, departAt time.Time, stops []string) (RouteQuote, error) {
	r := &maps.DirectionsRequest{
		Origin:      s.resolve(origin),
		Destination: s.resolve(destination),
		Mode:        maps.TravelModeDriving,
		Units:       maps.UnitsImperial,
	}
	for _, stop := range stops {
		r.Waypoints = append(r.Waypoints, s.resolve(stop))
	}
	if !departAt.IsZero() {
		r.DepartureTime = strconv.FormatInt(departAt.Unix(), 10)
	}

	routes, _, err := s.client.Directions(ctx, r)
	// A timed-out lookup reads the same as the provider finding nothing:
	// callers tell the rider no route exists for that date and time.
	if errors.Is(err, context.DeadlineExceeded) {
		return RouteQuote{}, ErrNoRoute
	}
	if err != nil {
		return RouteQuote{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return RouteQuote{}, ErrNoRoute
	}

	// With waypoints the route has one leg per segment; the trip total is
	// the sum over all legs.
	var meters int
	var dur time.Duration
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		dur += leg.Duration
	}
	return RouteQuote{
		Miles:           float64(meters) / metersPerMile,
		DurationMinutes: int(math.Round(dur.Minutes())),
	}, nil
}

func (s *RouteService) resolve(addr string) string {
	if addr == HomeBaseSentinel {
		return s.homeBase
	}
	return addr
}
