// README: Audit log of ride status and fee changes, backed by PostgreSQL.
package ride

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"overlook/internal/types"
)

type EventType string

const (
	EventCreated      EventType = "created"
	EventAccepted     EventType = "accepted"
	EventDenied       EventType = "denied"
	EventCancelled    EventType = "cancelled"
	EventCompleted    EventType = "completed"
	EventRescheduled  EventType = "rescheduled"
	EventFareAdjusted EventType = "fare_adjusted"
	EventEdited       EventType = "edited"
)

// Event is one append-only audit row. Total snapshots the fare after the
// change so billing disputes can be replayed without the ride document.
type Event struct {
	RideID    types.ID
	Type      EventType
	Status    Status
	Total     float64
	ActorType string
	ActorID   string
	CreatedAt time.Time
}

type EventStore struct {
	db *pgxpool.Pool
}

func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) Append(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO ride_events (
            ride_id, event_type, status, total, actor_type, actor_id, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(e.RideID),
		string(e.Type),
		string(e.Status),
		e.Total,
		e.ActorType,
		e.ActorID,
		e.CreatedAt,
	)
	return err
}

func eventForTransition(from, to Status) EventType {
	switch to {
	case StatusAccepted:
		return EventAccepted
	case StatusDenied:
		return EventDenied
	case StatusCancelled:
		return EventCancelled
	case StatusCompleted:
		return EventCompleted
	case StatusPending:
		if from != StatusPending {
			return EventRescheduled
		}
	}
	return EventEdited
}
