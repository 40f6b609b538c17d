package response

import (
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/handler/dto/request"
)

type SlotResponse struct {
	StartsAt string `json:"startsAt"`
	Time     string `json:"time"`
}

func FromSlots(slots []booking.Slot) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = SlotResponse{
			StartsAt: slot.Start.Format(request.TimestampLayout),
			Time:     slot.Start.Format("15:04"),
		}
	}
	return result
}

type BookingResponse struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Phone      string `json:"phone"`
	StartsAt   string `json:"startsAt"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:         b.ID().String(),
		ClientName: b.Contact().Name(),
		Phone:      b.Contact().Phone(),
		StartsAt:   b.StartsAt().Format(request.TimestampLayout),
		Status:     string(b.Status()),
	}
	if !b.CreatedAt().IsZero() {
		resp.CreatedAt = b.CreatedAt().Format(time.RFC3339)
	}
	return resp
}

func FromBookings(bookings []*booking.Booking) []*BookingResponse {
	result := make([]*BookingResponse, len(bookings))
	for i, b := range bookings {
		result[i] = FromBooking(b)
	}
	return result
}
