// README: Ride service implements the ride lifecycle and all fee mutations.
package ride

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"overlook/internal/maps"
	"overlook/internal/modules/pricing"
	"overlook/internal/types"
)

var (
	ErrNotFound     = errors.New("ride not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrBadRequest   = errors.New("bad request")
	ErrForbidden    = errors.New("not allowed")
)

// fallbackDurationMinutes is written when the provider quote carries no
// usable duration.
const fallbackDurationMinutes = 60

// Store is the ride document store. The production implementation is
// Firestore; tests install an in-memory one. Writes are last-writer-wins:
// concurrent edits to the same ride's fees are not serialized here.
type Store interface {
	Create(ctx context.Context, r *Ride) error
	Get(ctx context.Context, id types.ID) (*Ride, error)
	Update(ctx context.Context, r *Ride) error
}

// Fares is the slice of the fare calculator the ride lifecycle needs.
type Fares interface {
	TripEstimate(ctx context.Context, req pricing.TripRequest) (pricing.Estimate, error)
	DirectRoute(ctx context.Context, origin, destination string, departAt time.Time) (maps.RouteQuote, error)
	Config() pricing.Config
}

type Service struct {
	store  Store
	fares  Fares
	events *EventStore
	now    func() time.Time
}

// NewService wires the ride service. events may be nil; the audit log is
// best effort.
func NewService(store Store, fares Fares, events *EventStore) *Service {
	return &Service{store: store, fares: fares, events: events, now: time.Now}
}

type CreateCommand struct {
	RiderID     types.ID
	Pickup      string
	Dropoff     string
	ScheduledAt time.Time
	RoundTrip   bool
	Stops       []string
}

type AcceptCommand struct {
	RideID   types.ID
	DriverID types.ID
}

type DenyCommand struct {
	RideID   types.ID
	DriverID types.ID
}

type CancelCommand struct {
	RideID    types.ID
	Requester types.ID
	Driver    bool
}

type CompleteCommand struct {
	RideID   types.ID
	DriverID types.ID
}

type RescheduleCommand struct {
	RideID    types.ID
	Requester types.ID
	NewTime   time.Time
}

type DriverFareCommand struct {
	RideID         types.ID
	DriverID       types.ID
	RequestedTotal float64
}

// EditCommand is a partial ride patch. Fees is driver-only and may contain
// the driver_addon key and nothing else; any other key fails the whole edit.
type EditCommand struct {
	RideID      types.ID
	Requester   types.ID
	Driver      bool
	Pickup      *string
	Dropoff     *string
	ScheduledAt *time.Time
	Fees        map[string]float64
}

// Create books a ride: it prices the trip, builds the fee ledger with the
// base fare and any day-of surcharge, and persists the pending ride. Fare
// computation errors propagate; a ride is never written with a guessed fare.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Ride, error) {
	if cmd.RiderID == "" || cmd.Pickup == "" || cmd.Dropoff == "" {
		return nil, fmt.Errorf("%w: rider, pickup, and dropoff are required", ErrBadRequest)
	}
	if cmd.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", ErrBadRequest)
	}

	est, err := s.fares.TripEstimate(ctx, pricing.TripRequest{
		Pickup:      cmd.Pickup,
		Dropoff:     cmd.Dropoff,
		RequestedAt: cmd.ScheduledAt,
		RoundTrip:   cmd.RoundTrip,
		Stops:       cmd.Stops,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	fees := NewFees(est.Fare, cmd.ScheduledAt, now)
	duration := est.Quote.DurationMinutes
	if duration <= 0 {
		duration = fallbackDurationMinutes
	}

	r := &Ride{
		ID:              newID(),
		RiderID:         cmd.RiderID,
		Pickup:          cmd.Pickup,
		Dropoff:         cmd.Dropoff,
		Stops:           cmd.Stops,
		RoundTrip:       cmd.RoundTrip,
		ScheduledAt:     cmd.ScheduledAt,
		Fees:            fees,
		Fare:            fees.Total(),
		DurationMinutes: duration,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, r, EventCreated, "rider", string(cmd.RiderID))
	return r, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Ride, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	return s.transition(ctx, cmd.RideID, StatusAccepted, "driver", string(cmd.DriverID), func(r *Ride) {
		r.DriverID = &cmd.DriverID
	})
}

func (s *Service) Deny(ctx context.Context, cmd DenyCommand) error {
	return s.transition(ctx, cmd.RideID, StatusDenied, "driver", string(cmd.DriverID), nil)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	actor := "rider"
	if cmd.Driver {
		actor = "driver"
	}
	return s.transition(ctx, cmd.RideID, StatusCancelled, actor, string(cmd.Requester), nil)
}

func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	return s.transition(ctx, cmd.RideID, StatusCompleted, "driver", string(cmd.DriverID), nil)
}

// RescheduleQuote prices a prospective reschedule without mutating the ride.
// Only the rider or the assigned driver may ask.
func (s *Service) RescheduleQuote(ctx context.Context, id, requester types.ID, newTime time.Time) (float64, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if r.RiderID != requester && (r.DriverID == nil || *r.DriverID != requester) {
		return 0, fmt.Errorf("%w: ride belongs to another rider", ErrForbidden)
	}
	airport, local, err := s.classifyForReschedule(ctx, r, newTime)
	if err != nil {
		return 0, err
	}
	return RescheduleFee(airport, local, s.now(), newTime), nil
}

// Reschedule moves the ride to a new time. The reschedule fee is computed
// server-side and replaces any earlier one, the status drops back to pending
// for re-acceptance, and the ride is marked revised.
func (s *Service) Reschedule(ctx context.Context, cmd RescheduleCommand) (*Ride, error) {
	if cmd.NewTime.IsZero() {
		return nil, fmt.Errorf("%w: new ride time is required", ErrBadRequest)
	}
	r, err := s.store.Get(ctx, cmd.RideID)
	if err != nil {
		return nil, err
	}
	if r.RiderID != cmd.Requester {
		return nil, fmt.Errorf("%w: only the ride owner may reschedule", ErrForbidden)
	}
	if r.Status == StatusCompleted || r.Status == StatusCancelled {
		return nil, ErrInvalidState
	}

	airport, local, err := s.classifyForReschedule(ctx, r, cmd.NewTime)
	if err != nil {
		return nil, err
	}
	now := s.now()
	r.Fees.ApplyReschedule(RescheduleFee(airport, local, now, cmd.NewTime))
	r.ScheduledAt = cmd.NewTime
	if r.Status != StatusPending {
		r.Status = StatusPending
	}
	r.IsRevised = true
	r.Fare = r.Fees.Total()
	r.UpdatedAt = now
	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, r, EventRescheduled, "rider", string(cmd.Requester))
	return r, nil
}

// SetDriverFare applies a driver add-on: the assigned driver names a target
// total and the ledger absorbs the difference, which may only be positive.
func (s *Service) SetDriverFare(ctx context.Context, cmd DriverFareCommand) (*Ride, error) {
	if cmd.RequestedTotal <= 0 {
		return nil, fmt.Errorf("%w: requested total must be positive", ErrBadRequest)
	}
	r, err := s.store.Get(ctx, cmd.RideID)
	if err != nil {
		return nil, err
	}
	if r.DriverID == nil || *r.DriverID != cmd.DriverID {
		return nil, fmt.Errorf("%w: only the assigned driver may adjust the fare", ErrForbidden)
	}
	if r.Status == StatusCompleted {
		return nil, ErrInvalidState
	}
	if err := r.Fees.ApplyDriverAddon(cmd.RequestedTotal); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	r.Fare = r.Fees.Total()
	r.UpdatedAt = s.now()
	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, r, EventFareAdjusted, "driver", string(cmd.DriverID))
	return r, nil
}

// Edit applies a partial patch. The whole edit is validated before anything
// is written: a bad fee key rejects the pickup change sitting next to it.
// Patching the scheduled time is a reschedule no matter which endpoint it
// arrives through, so the fee policy, re-acceptance, and the revised flag
// all apply.
func (s *Service) Edit(ctx context.Context, cmd EditCommand) (*Ride, error) {
	r, err := s.store.Get(ctx, cmd.RideID)
	if err != nil {
		return nil, err
	}
	if cmd.Driver {
		if r.DriverID == nil || *r.DriverID != cmd.Requester {
			return nil, fmt.Errorf("%w: ride is not assigned to this driver", ErrForbidden)
		}
	} else if r.RiderID != cmd.Requester {
		return nil, fmt.Errorf("%w: ride belongs to another rider", ErrForbidden)
	}
	if r.Status == StatusCompleted {
		return nil, ErrInvalidState
	}

	if len(cmd.Fees) > 0 {
		if !cmd.Driver {
			return nil, fmt.Errorf("%w: riders may not modify fees", ErrForbidden)
		}
		for key := range cmd.Fees {
			if key != FeeDriverAddon {
				return nil, fmt.Errorf("%w: fee %q may not be edited", ErrBadRequest, key)
			}
		}
		if cmd.Fees[FeeDriverAddon] < 0 {
			return nil, fmt.Errorf("%w: driver addon must not be negative", ErrBadRequest)
		}
	}

	repriced := false
	if cmd.Pickup != nil && *cmd.Pickup != r.Pickup {
		if *cmd.Pickup == "" {
			return nil, fmt.Errorf("%w: pickup must not be empty", ErrBadRequest)
		}
		r.Pickup = *cmd.Pickup
		repriced = true
	}
	if cmd.Dropoff != nil && *cmd.Dropoff != r.Dropoff {
		if *cmd.Dropoff == "" {
			return nil, fmt.Errorf("%w: dropoff must not be empty", ErrBadRequest)
		}
		r.Dropoff = *cmd.Dropoff
		repriced = true
	}
	timeChanged := false
	if cmd.ScheduledAt != nil && !cmd.ScheduledAt.Equal(r.ScheduledAt) {
		r.ScheduledAt = *cmd.ScheduledAt
		repriced = true
		timeChanged = true
	}

	// The base is never taken from the client: whenever trip parameters
	// change it is recomputed from them.
	if repriced {
		est, err := s.fares.TripEstimate(ctx, pricing.TripRequest{
			Pickup:      r.Pickup,
			Dropoff:     r.Dropoff,
			RequestedAt: r.ScheduledAt,
			RoundTrip:   r.RoundTrip,
			Stops:       r.Stops,
		})
		if err != nil {
			return nil, err
		}
		r.Fees[FeeBase] = Round2(est.Fare)
		if est.Quote.DurationMinutes > 0 {
			r.DurationMinutes = est.Quote.DurationMinutes
		}
	}
	if timeChanged {
		airport, local, err := s.classifyForReschedule(ctx, r, r.ScheduledAt)
		if err != nil {
			return nil, err
		}
		r.Fees.ApplyReschedule(RescheduleFee(airport, local, s.now(), r.ScheduledAt))
		r.Status = StatusPending
		r.IsRevised = true
	}
	if v, ok := cmd.Fees[FeeDriverAddon]; ok {
		r.Fees[FeeDriverAddon] = Round2(v)
	}

	r.Fare = r.Fees.Total()
	r.UpdatedAt = s.now()
	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	actor := "rider"
	if cmd.Driver {
		actor = "driver"
	}
	s.appendEvent(ctx, r, EventEdited, actor, string(cmd.Requester))
	return r, nil
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status, actorType, actorID string, mutate func(*Ride)) error {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(r.Status, to) {
		return ErrInvalidState
	}
	from := r.Status
	r.Status = to
	if mutate != nil {
		mutate(r)
	}
	r.UpdatedAt = s.now()
	if err := s.store.Update(ctx, r); err != nil {
		return err
	}
	s.appendEvent(ctx, r, eventForTransition(from, to), actorType, actorID)
	return nil
}

// classifyForReschedule decides the fee class for a reschedule: airport when
// either endpoint is a listed airport address, local when the direct mileage
// is under the short-trip threshold. The mileage check needs a fresh quote.
func (s *Service) classifyForReschedule(ctx context.Context, r *Ride, newTime time.Time) (airport, local bool, err error) {
	cfg := s.fares.Config()
	if cfg.ClassifyTrip(r.Pickup, r.Dropoff).Kind == pricing.KindAirport {
		return true, false, nil
	}
	q, err := s.fares.DirectRoute(ctx, r.Pickup, r.Dropoff, newTime)
	if err != nil {
		return false, false, err
	}
	return false, q.Miles < cfg.ShortTripMaxMiles, nil
}

func (s *Service) appendEvent(ctx context.Context, r *Ride, typ EventType, actorType, actorID string) {
	if s.events == nil {
		return
	}
	_ = s.events.Append(ctx, &Event{
		RideID:    r.ID,
		Type:      typ,
		Status:    r.Status,
		Total:     r.Fare,
		ActorType: actorType,
		ActorID:   actorID,
		CreatedAt: s.now(),
	})
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
