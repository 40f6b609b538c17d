package schedule

import (
	"sort"
	"strings"
	"time"
)

// Week is one version of the consultant's weekly availability. A day without
// an interval is a day off. Values are immutable once built; an administrative
// update always replaces the whole week.
type Week struct {
	days [7]*Interval // indexed Monday=0 .. Sunday=6
}

// DayInput is an unvalidated working-hours declaration for one weekday.
type DayInput struct {
	Start TimeOfDay
	End   TimeOfDay
}

// DayError describes why a single day of a proposed week was rejected.
type DayError struct {
	Day    time.Weekday
	Reason string
}

// ValidationError rejects a proposed week in full, enumerating every
// offending day so the admin can fix them in one pass.
type ValidationError struct {
	Days []DayError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Days))
	for i, d := range e.Days {
		parts[i] = d.Day.String() + ": " + d.Reason
	}
	return "invalid schedule: " + strings.Join(parts, "; ")
}

// NewWeek validates every declared day and builds an immutable week.
// Any invalid day rejects the whole input.
func NewWeek(days map[time.Weekday]DayInput) (Week, error) {
	var w Week
	var bad []DayError

	for day, in := range days {
		iv, err := NewInterval(in.Start, in.End)
		if err != nil {
			bad = append(bad, DayError{Day: day, Reason: err.Error()})
			continue
		}
		w.days[dayIndex(day)] = &iv
	}

	if len(bad) > 0 {
		sort.Slice(bad, func(i, j int) bool { return dayIndex(bad[i].Day) < dayIndex(bad[j].Day) })
		return Week{}, &ValidationError{Days: bad}
	}
	return w, nil
}

// Interval returns the working hours for a weekday; ok is false on a day off.
func (w Week) Interval(day time.Weekday) (Interval, bool) {
	iv := w.days[dayIndex(day)]
	if iv == nil {
		return Interval{}, false
	}
	return *iv, true
}

// WorkingDays lists the configured days in Monday-first order.
func (w Week) WorkingDays() []time.Weekday {
	var days []time.Weekday
	for i, iv := range w.days {
		if iv != nil {
			days = append(days, weekdayAt(i))
		}
	}
	return days
}

func dayIndex(day time.Weekday) int {
	// time.Weekday is Sunday-first; the calendar here is Monday-first
	return (int(day) + 6) % 7
}

func weekdayAt(idx int) time.Weekday {
	return time.Weekday((idx + 1) % 7)
}
