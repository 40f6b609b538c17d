package response

import (
	"strings"
	"time"

	"consultbook/internal/domain/schedule"
)

type DaySpanResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ScheduleResponse struct {
	Days map[string]DaySpanResponse `json:"days"`
}

func FromWeek(w schedule.Week) *ScheduleResponse {
	days := make(map[string]DaySpanResponse)
	for _, day := range w.WorkingDays() {
		iv, _ := w.Interval(day)
		days[strings.ToLower(day.String())] = DaySpanResponse{
			Start: iv.Start().String(),
			End:   iv.End().String(),
		}
	}
	return &ScheduleResponse{Days: days}
}

// AvailabilityResponse is a day's open slots.
type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

func NewAvailabilityResponse(date time.Time, slots []SlotResponse) *AvailabilityResponse {
	if slots == nil {
		slots = []SlotResponse{}
	}
	return &AvailabilityResponse{
		Date:  date.Format("2006-01-02"),
		Slots: slots,
	}
}
