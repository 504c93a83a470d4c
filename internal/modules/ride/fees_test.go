// README: Fee ledger tests: day-of surcharge, driver add-on, reschedule fee.
package ride

import (
	"errors"
	"testing"
	"time"
)

func TestNewFeesDayOfSurcharge(t *testing.T) {
	now := time.Date(2026, 5, 2, 9, 15, 0, 0, time.UTC)

	cases := []struct {
		name      string
		scheduled time.Time
		wantDayOf float64
	}{
		{name: "same day 10:00", scheduled: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC), wantDayOf: 20},
		{name: "same day 07:00", scheduled: time.Date(2026, 5, 2, 7, 0, 0, 0, time.UTC), wantDayOf: 20},
		{name: "same day 18:59", scheduled: time.Date(2026, 5, 2, 18, 59, 0, 0, time.UTC), wantDayOf: 20},
		{name: "same day 20:00", scheduled: time.Date(2026, 5, 2, 20, 0, 0, 0, time.UTC), wantDayOf: 30},
		{name: "same day 00:30", scheduled: time.Date(2026, 5, 2, 0, 30, 0, 0, time.UTC), wantDayOf: 30},
		{name: "same day 01:30 dead zone", scheduled: time.Date(2026, 5, 2, 1, 30, 0, 0, time.UTC), wantDayOf: 0},
		{name: "three days out", scheduled: time.Date(2026, 5, 5, 10, 0, 0, 0, time.UTC), wantDayOf: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFees(100, tc.scheduled, now)
			if f[FeeBase] != 100 {
				t.Errorf("base = %v, want 100", f[FeeBase])
			}
			got, present := f[FeeDayOf]
			if tc.wantDayOf == 0 {
				if present {
					t.Errorf("day_of = %v, want absent", got)
				}
				return
			}
			if got != tc.wantDayOf {
				t.Errorf("day_of = %v, want %v", got, tc.wantDayOf)
			}
			if f.Total() != 100+tc.wantDayOf {
				t.Errorf("total = %v, want %v", f.Total(), 100+tc.wantDayOf)
			}
		})
	}
}

func TestNewFeesRoundsBase(t *testing.T) {
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	f := NewFees(87.456, now.AddDate(0, 0, 3), now)
	if f[FeeBase] != 87.46 {
		t.Errorf("base = %v, want 87.46", f[FeeBase])
	}
}

func TestApplyDriverAddon(t *testing.T) {
	f := Fees{FeeBase: 100, FeeDayOf: 20}

	if err := f.ApplyDriverAddon(150); err != nil {
		t.Fatalf("ApplyDriverAddon: %v", err)
	}
	if f[FeeDriverAddon] != 30 {
		t.Errorf("driver_addon = %v, want 30", f[FeeDriverAddon])
	}
	if f.Total() != 150 {
		t.Errorf("total = %v, want 150", f.Total())
	}

	// A later target replaces the earlier add-on rather than stacking on it.
	if err := f.ApplyDriverAddon(140); err != nil {
		t.Fatalf("second ApplyDriverAddon: %v", err)
	}
	if f[FeeDriverAddon] != 20 {
		t.Errorf("driver_addon = %v, want 20", f[FeeDriverAddon])
	}

	// Targets below the non-addon sum would need a negative add-on: rejected,
	// ledger untouched.
	if err := f.ApplyDriverAddon(110); !errors.Is(err, ErrNegativeAddon) {
		t.Fatalf("err = %v, want ErrNegativeAddon", err)
	}
	if f.Total() != 140 {
		t.Errorf("total after rejected addon = %v, want 140", f.Total())
	}
}

func TestApplyReschedule(t *testing.T) {
	f := Fees{FeeBase: 100, FeeReschedule: 20}

	f.ApplyReschedule(15)
	if f[FeeReschedule] != 15 {
		t.Errorf("reschedule = %v, want 15 (replaced, not added)", f[FeeReschedule])
	}

	f.ApplyReschedule(0)
	if _, ok := f[FeeReschedule]; ok {
		t.Error("reschedule fee of zero should remove the component")
	}
	if f.Total() != 100 {
		t.Errorf("total = %v, want 100", f.Total())
	}
}

func TestRescheduleFee(t *testing.T) {
	requestedAt := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		airport bool
		local   bool
		newTime time.Time
		want    float64
	}{
		{name: "airport within 12h", airport: true, newTime: requestedAt.Add(12 * time.Hour), want: 20},
		{name: "local within 2h", local: true, newTime: requestedAt.Add(2 * time.Hour), want: 15},
		{name: "local two days out", local: true, newTime: requestedAt.Add(48 * time.Hour), want: 0},
		{name: "airport exactly 24h", airport: true, newTime: requestedAt.Add(24 * time.Hour), want: 20},
		{name: "long-distance within window", newTime: requestedAt.Add(6 * time.Hour), want: 0},
		{name: "new time in the past", airport: true, newTime: requestedAt.Add(-time.Hour), want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RescheduleFee(tc.airport, tc.local, requestedAt, tc.newTime)
			if got != tc.want {
				t.Errorf("RescheduleFee = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTotalSumsEverything(t *testing.T) {
	f := Fees{FeeBase: 103.5, FeeDayOf: 20, FeeReschedule: 15, FeeDriverAddon: 11.5, "toll": 7}
	if f.Total() != 157 {
		t.Errorf("total = %v, want 157", f.Total())
	}
}
