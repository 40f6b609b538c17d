package request

import (
	"fmt"
	"strings"
	"time"

	"consultbook/internal/domain/schedule"
)

// DaySpanRequest declares working hours for one weekday, "HH:MM" wall clock.
type DaySpanRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// ReplaceScheduleRequest replaces the whole weekly schedule. Omitted days
// become days off.
type ReplaceScheduleRequest struct {
	Days map[string]DaySpanRequest `json:"days" binding:"required"`
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ToDomain parses the request; as with domain validation, every bad entry is
// reported, not just the first.
func (r ReplaceScheduleRequest) ToDomain() (map[time.Weekday]schedule.DayInput, []string) {
	days := make(map[time.Weekday]schedule.DayInput, len(r.Days))
	var problems []string

	for name, span := range r.Days {
		day, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: unknown weekday", name))
			continue
		}

		start, err := schedule.ParseTimeOfDay(span.Start)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: bad start %q", name, span.Start))
			continue
		}
		end, err := schedule.ParseTimeOfDay(span.End)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: bad end %q", name, span.End))
			continue
		}

		days[day] = schedule.DayInput{Start: start, End: end}
	}

	return days, problems
}
