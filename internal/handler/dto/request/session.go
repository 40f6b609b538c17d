package request

import "time"

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05"
)

type StartSessionRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type ChooseDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (r ChooseDateRequest) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

type ChooseSlotRequest struct {
	StartsAt string `json:"startsAt" binding:"required"`
}

func (r ChooseSlotRequest) ParseStartsAt() (time.Time, error) {
	return time.Parse(TimestampLayout, r.StartsAt)
}
