package booking

import (
	"time"

	"consultbook/internal/domain/schedule"
)

// Slot is a candidate consultation start time. Slots are derived on demand
// and never persisted.
type Slot struct {
	Start time.Time
}

// GenerateSlots produces the bookable slots of one day, ascending, spaced by
// granularity. The interval comes from the weekly schedule; now drives the
// same-day cutoff: on the current day the first slot is the earliest grid
// boundary no sooner than now+buffer. A slot whose end would pass the
// interval end is excluded.
//
// The function is pure: identical inputs yield identical output.
func GenerateSlots(date time.Time, iv schedule.Interval, now time.Time, granularity, buffer time.Duration) []Slot {
	if granularity <= 0 {
		return nil
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start := midnight.Add(time.Duration(iv.Start().Minutes()) * time.Minute)
	end := midnight.Add(time.Duration(iv.End().Minutes()) * time.Minute)

	if sameDay(date, now) {
		cutoff := ceilToGrid(midnight, now.Add(buffer), granularity)
		if cutoff.After(start) {
			start = cutoff
		}
	}

	var slots []Slot
	for s := start; !s.Add(granularity).After(end); s = s.Add(granularity) {
		slots = append(slots, Slot{Start: s})
	}
	return slots
}

// ceilToGrid rounds t up to the next granularity boundary counted from
// midnight; a value already on the grid is kept.
func ceilToGrid(midnight, t time.Time, granularity time.Duration) time.Time {
	if !t.After(midnight) {
		return midnight
	}
	elapsed := t.Sub(midnight)
	steps := elapsed / granularity
	if elapsed%granularity != 0 {
		steps++
	}
	return midnight.Add(steps * granularity)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
