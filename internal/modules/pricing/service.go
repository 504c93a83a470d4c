// README: Fare calculator: location-class-aware trip pricing over the directions provider.
package pricing

import (
	"context"
	"errors"
	"time"

	"overlook/internal/maps"
)

var ErrBadRequest = errors.New("bad request")

// Routes is the directions provider contract the calculator depends on.
// Satisfied by maps.RouteService; tests install a stub.
type Routes interface {
	GetRoute(ctx context.Context, origin, destination string, departAt time.Time, stops []string) (maps.RouteQuote, error)
}

type Service struct {
	cfg    Config
	routes Routes
	quotes *QuoteStore
}

// NewService builds the calculator. quotes may be nil to disable caching.
func NewService(cfg Config, routes Routes, quotes *QuoteStore) *Service {
	return &Service{cfg: cfg, routes: routes, quotes: quotes}
}

func (s *Service) Config() Config {
	return s.cfg
}

// TripRequest describes one requested trip. Stops are optional intermediate
// addresses routed in order.
type TripRequest struct {
	Pickup      string
	Dropoff     string
	RequestedAt time.Time
	RoundTrip   bool
	Stops       []string
}

// Estimate is a computed fare plus the provider quote it was derived from.
// Fare is unrounded dollars; rounding to cents happens when the amount is
// written into a ride's fee map.
type Estimate struct {
	Fare  float64
	Quote maps.RouteQuote
}

// RoundTripFare is the result of pricing a transport-hub round trip as two
// independent one-way legs.
type RoundTripFare struct {
	Total    float64 `json:"total"`
	Outbound float64 `json:"outbound"`
	Return   float64 `json:"return"`
}

// TripFare returns the total fare for a trip.
func (s *Service) TripFare(ctx context.Context, req TripRequest) (float64, error) {
	est, err := s.TripEstimate(ctx, req)
	if err != nil {
		return 0, err
	}
	return est.Fare, nil
}

// TripEstimate computes the fare and keeps the direct pickup→dropoff quote so
// ride creation can snapshot the trip duration.
//
// Rules, in priority order:
//  1. round trips: direct miles * 2 * RoundTripPerMile, overriding everything
//  2. airport trips: rate base + rate per-mile * (home base → non-airport endpoint)
//  3. station trips: direct miles * StationPerMile
//  4. generic short (< ShortTripMaxMiles): (direct + dropoff→home base) * ShortTripPerMile
//  5. generic long: direct miles * LongTripPerMile
func (s *Service) TripEstimate(ctx context.Context, req TripRequest) (Estimate, error) {
	if req.Pickup == "" || req.Dropoff == "" {
		return Estimate{}, ErrBadRequest
	}

	direct, err := s.route(ctx, req.Pickup, req.Dropoff, req.RequestedAt, req.Stops)
	if err != nil {
		return Estimate{}, err
	}

	if req.RoundTrip {
		return Estimate{Fare: direct.Miles * 2 * s.cfg.RoundTripPerMile, Quote: direct}, nil
	}

	tc := s.cfg.ClassifyTrip(req.Pickup, req.Dropoff)
	switch tc.Kind {
	case KindAirport:
		fromBase, err := s.route(ctx, maps.HomeBaseSentinel, tc.OtherEndpoint, req.RequestedAt, nil)
		if err != nil {
			return Estimate{}, err
		}
		return Estimate{Fare: tc.Airport.Base + tc.Airport.PerMile*fromBase.Miles, Quote: direct}, nil
	case KindTrainStation:
		return Estimate{Fare: direct.Miles * s.cfg.StationPerMile, Quote: direct}, nil
	}

	// The short/long threshold is always judged on the direct mileage.
	if direct.Miles < s.cfg.ShortTripMaxMiles {
		toBase, err := s.route(ctx, req.Dropoff, maps.HomeBaseSentinel, req.RequestedAt, nil)
		if err != nil {
			return Estimate{}, err
		}
		return Estimate{Fare: (direct.Miles + toBase.Miles) * s.cfg.ShortTripPerMile, Quote: direct}, nil
	}
	return Estimate{Fare: direct.Miles * s.cfg.LongTripPerMile, Quote: direct}, nil
}

// TransportRoundTripFare prices a round trip that touches a transport hub as
// two independent one-way fares, outbound at req.RequestedAt and the return
// leg with the endpoints swapped at returnAt. Callers book the legs as two
// separate rides.
func (s *Service) TransportRoundTripFare(ctx context.Context, req TripRequest, returnAt time.Time) (RoundTripFare, error) {
	outReq := req
	outReq.RoundTrip = false
	outbound, err := s.TripFare(ctx, outReq)
	if err != nil {
		return RoundTripFare{}, err
	}

	retReq := TripRequest{
		Pickup:      req.Dropoff,
		Dropoff:     req.Pickup,
		RequestedAt: returnAt,
		Stops:       reverse(req.Stops),
	}
	ret, err := s.TripFare(ctx, retReq)
	if err != nil {
		return RoundTripFare{}, err
	}
	return RoundTripFare{Total: outbound + ret, Outbound: outbound, Return: ret}, nil
}

// DirectRoute quotes the direct origin→destination route, going through the
// cache. Ride reschedules use it to judge whether a trip counts as local.
func (s *Service) DirectRoute(ctx context.Context, origin, destination string, departAt time.Time) (maps.RouteQuote, error) {
	return s.route(ctx, origin, destination, departAt, nil)
}

// route consults the quote cache before hitting the provider. Stop-over trips
// bypass the cache; the key space is not worth it.
func (s *Service) route(ctx context.Context, origin, destination string, departAt time.Time, stops []string) (maps.RouteQuote, error) {
	if s.quotes != nil && len(stops) == 0 {
		if q, ok := s.quotes.Get(ctx, origin, destination, departAt); ok {
			return q, nil
		}
	}
	q, err := s.routes.GetRoute(ctx, origin, destination, departAt, stops)
	if err != nil {
		return maps.RouteQuote{}, err
	}
	if s.quotes != nil && len(stops) == 0 {
		s.quotes.Put(ctx, origin, destination, departAt, q)
	}
	return q, nil
}

func reverse(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
