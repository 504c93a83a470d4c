// README: Ride document and status definitions.
package ride

import (
	"time"

	"overlook/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDenied    Status = "denied"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Ride is the persisted ride document. Fees is the source of truth for
// money; Fare is the derived total kept in sync on every write for older
// readers that only look at the scalar.
type Ride struct {
	ID              types.ID  `firestore:"-"`
	RiderID         types.ID  `firestore:"riderId"`
	DriverID        *types.ID `firestore:"driverId"`
	Pickup          string    `firestore:"pickup"`
	Dropoff         string    `firestore:"dropoff"`
	Stops           []string  `firestore:"stops,omitempty"`
	RoundTrip       bool      `firestore:"roundTrip"`
	ScheduledAt     time.Time `firestore:"scheduledAt"`
	Fees            Fees      `firestore:"fees"`
	Fare            float64   `firestore:"fare"`
	DurationMinutes int       `firestore:"duration"`
	Status          Status    `firestore:"status"`
	IsRevised       bool      `firestore:"isRevised"`
	CreatedAt       time.Time `firestore:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

// AllowedTransitions represents the ride status flow as code. A reschedule
// moves an accepted or denied ride back to pending for re-acceptance.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusDenied, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled, StatusPending},
	StatusDenied:   {StatusPending, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
