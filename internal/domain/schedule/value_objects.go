package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidInterval  = errors.New("interval start must be before end")
	ErrUnalignedTime    = errors.New("time must align to the slot grid")
)

// slot grid step in minutes; interval boundaries must sit on this grid
const gridMinutes = 30

// TimeOfDay is minutes since midnight, timezone-naive.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay accepts "HH:MM" wall-clock values.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) aligned() bool {
	return int(t)%gridMinutes == 0
}

// Interval is a working-hours span within a single day.
type Interval struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, ErrInvalidInterval
	}
	if !start.aligned() || !end.aligned() {
		return Interval{}, ErrUnalignedTime
	}
	return Interval{start: start, end: end}, nil
}

func (i Interval) Start() TimeOfDay { return i.start }
func (i Interval) End() TimeOfDay   { return i.end }

func (i Interval) String() string {
	return i.start.String() + "-" + i.end.String()
}
