// README: Fee ledger: named fee components that always sum to the fare.
package ride

import (
	"errors"
	"math"
	"time"
)

// Known fee component keys. The map is open so one-off components can be
// added later, but authorization checks and the day-of/reschedule policies
// only ever touch these.
const (
	FeeBase        = "base"
	FeeReschedule  = "reschedule"
	FeeDayOf       = "day_of"
	FeeDriverAddon = "driver_addon"
)

// Day-of-scheduling surcharges, charged when a ride is booked for the same
// calendar day it is requested. Evening runs 19:00 through 01:00; the hour
// from 01:00 to 07:00 carries no surcharge.
const (
	dayOfDaytimeFee = 20
	dayOfEveningFee = 30
)

var ErrNegativeAddon = errors.New("requested total is below the current fare")

// Fees maps fee component names to dollar amounts. The ride's total fare is
// always the sum of the entries; no stored scalar is trusted over it.
type Fees map[string]float64

// NewFees builds the ledger for a newly created ride: the rounded base fare
// plus the day-of surcharge when the scheduled time falls on today.
func NewFees(baseFare float64, scheduledAt, now time.Time) Fees {
	f := Fees{FeeBase: Round2(baseFare)}
	if s := DayOfSurcharge(scheduledAt, now); s > 0 {
		f[FeeDayOf] = s
	}
	return f
}

// Total is the authoritative fare: the rounded sum of every component.
func (f Fees) Total() float64 {
	var sum float64
	for _, v := range f {
		sum += v
	}
	return Round2(sum)
}

// ApplyDriverAddon sets the driver_addon component to whatever delta makes
// the total equal requestedTotal, holding every other component fixed. The
// delta may replace an earlier add-on but may never be negative: drivers can
// add, not discount.
func (f Fees) ApplyDriverAddon(requestedTotal float64) error {
	others := f.Total() - f[FeeDriverAddon]
	addon := Round2(requestedTotal - others)
	if addon < 0 {
		return ErrNegativeAddon
	}
	f[FeeDriverAddon] = addon
	return nil
}

// ApplyReschedule replaces the reschedule component. Only the latest
// reschedule fee applies; it never accumulates across reschedules.
func (f Fees) ApplyReschedule(fee float64) {
	if fee > 0 {
		f[FeeReschedule] = Round2(fee)
	} else {
		delete(f, FeeReschedule)
	}
}

// DayOfSurcharge returns the short-notice booking surcharge: zero unless the
// ride is scheduled for the same calendar day as now, in which case the
// scheduled hour selects the daytime or evening fee.
func DayOfSurcharge(scheduledAt, now time.Time) float64 {
	y1, m1, d1 := scheduledAt.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return 0
	}
	h := scheduledAt.Hour()
	switch {
	case h >= 7 && h < 19:
		return dayOfDaytimeFee
	case h >= 19 || h < 1:
		return dayOfEveningFee
	default:
		return 0
	}
}

// RescheduleFee quotes the fee for moving a ride to newRideAt, requested at
// requestedAt. Moves landing within the next 24 hours cost 20 for airport
// rides and 15 for local ones; anything further out is free.
func RescheduleFee(airport, local bool, requestedAt, newRideAt time.Time) float64 {
	lead := newRideAt.Sub(requestedAt)
	if lead <= 0 || lead > 24*time.Hour {
		return 0
	}
	switch {
	case airport:
		return 20
	case local:
		return 15
	default:
		return 0
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
