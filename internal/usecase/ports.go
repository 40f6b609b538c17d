package usecase

import (
	"context"
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/domain/schedule"

	"github.com/google/uuid"
)

// BookingRepository is the durable booking ledger port. Reserve must be
// atomic against concurrent callers; the postgres implementation backs it
// with a partial unique index and reports the loser with a DUPLICATE_KEY
// repository error.
type BookingRepository interface {
	Reserve(ctx context.Context, b *booking.Booking) error
	BookedStarts(ctx context.Context, date time.Time) ([]time.Time, error)
	IsAvailable(ctx context.Context, startAt time.Time) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByDate(ctx context.Context, date time.Time) ([]*booking.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type AvailabilityRepository interface {
	// Load returns (nil, nil) when availability was never configured.
	Load(ctx context.Context) (*schedule.Week, error)
	Replace(ctx context.Context, week schedule.Week) error
}

// BookingConfirmed is emitted after a reservation commits.
type BookingConfirmed struct {
	BookingID  uuid.UUID `json:"bookingId"`
	ClientName string    `json:"clientName"`
	Phone      string    `json:"phone"`
	StartsAt   time.Time `json:"startsAt"`
}

// Notifier delivers booking confirmations to interested parties. Delivery is
// best effort; a failure must never roll back the booking.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, event BookingConfirmed)
}

// SessionStore keeps in-flight conversation sessions. Idle expiry is the
// transport's concern.
type SessionStore interface {
	Put(session Session)
	Get(id uuid.UUID) (Session, bool)
	Delete(id uuid.UUID)
}
