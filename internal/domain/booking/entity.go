package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	return s == StatusScheduled || s == StatusCancelled
}

// Booking is one confirmed consultation slot. Cancelled bookings stay on
// record; only scheduled ones occupy a slot.
type Booking struct {
	id        uuid.UUID
	contact   Contact
	startsAt  time.Time
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(contact Contact, startsAt time.Time) *Booking {
	return &Booking{
		id:       uuid.New(),
		contact:  contact,
		startsAt: startsAt,
		status:   StatusScheduled,
	}
}

func ReconstructBooking(
	id uuid.UUID,
	contact Contact,
	startsAt time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		contact:   contact,
		startsAt:  startsAt,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Cancel is idempotent: cancelling a cancelled booking changes nothing.
func (b *Booking) Cancel() {
	b.status = StatusCancelled
}

func (b *Booking) IsScheduled() bool {
	return b.status == StatusScheduled
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) Contact() Contact     { return b.contact }
func (b *Booking) StartsAt() time.Time  { return b.startsAt }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
