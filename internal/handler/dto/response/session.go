package response

import (
	"consultbook/internal/handler/dto/request"
	"consultbook/internal/usecase"
)

type SessionResponse struct {
	ID      string           `json:"id"`
	Step    string           `json:"step"`
	Outcome string           `json:"outcome,omitempty"`
	Date    string           `json:"date,omitempty"`
	Slots   []SlotResponse   `json:"slots,omitempty"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

func FromSession(s usecase.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:   s.ID.String(),
		Step: string(s.Step),
	}
	if !s.Date.IsZero() {
		resp.Date = s.Date.Format(request.DateLayout)
	}
	return resp
}

func FromResult(r usecase.Result) *SessionResponse {
	resp := FromSession(r.Session)
	resp.Outcome = string(r.Outcome)
	if len(r.Slots) > 0 {
		resp.Slots = FromSlots(r.Slots)
	}
	if r.Booking != nil {
		resp.Booking = FromBooking(r.Booking)
	}
	return resp
}
