package usecase

import (
	"context"
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/infra"
	"consultbook/internal/pkg/clock"
	"consultbook/internal/pkg/config"
	"consultbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Scheduler answers "what is free on date D" and performs reservations
// against the booking ledger.
type Scheduler interface {
	// AvailableSlots returns the open slots of a day, ascending. A day off
	// yields an empty list without error; an unconfigured schedule fails
	// with ErrNoSchedule; dates outside [today, today+lookahead] fail with
	// ErrPastDate / ErrDateOutOfRange.
	AvailableSlots(ctx context.Context, date time.Time) ([]booking.Slot, error)

	// Book reserves startAt for the contact. On ErrSlotTaken the returned
	// slot list already holds fresh alternatives so the caller can re-prompt
	// without a second round trip.
	Book(ctx context.Context, startAt time.Time, contact booking.Contact) (*booking.Booking, []booking.Slot, error)

	// CancelBooking frees a slot; cancelling twice is a no-op success.
	CancelBooking(ctx context.Context, id uuid.UUID) error

	Booking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingsOn(ctx context.Context, date time.Time) ([]*booking.Booking, error)
}

type schedulerImpl struct {
	bookings     BookingRepository
	availability AvailabilityUseCase
	notifier     Notifier
	clock        clock.Clock
	cfg          config.BookingConfig
}

func NewScheduler(
	bookings BookingRepository,
	availability AvailabilityUseCase,
	notifier Notifier,
	clk clock.Clock,
	cfg config.BookingConfig,
) Scheduler {
	return &schedulerImpl{
		bookings:     bookings,
		availability: availability,
		notifier:     notifier,
		clock:        clk,
		cfg:          cfg,
	}
}

func (s *schedulerImpl) AvailableSlots(ctx context.Context, date time.Time) ([]booking.Slot, error) {
	slots, _, err := s.candidateSlots(ctx, date)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.BookedStarts(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return filterBooked(slots, booked), nil
}

func (s *schedulerImpl) Book(ctx context.Context, startAt time.Time, contact booking.Contact) (*booking.Booking, []booking.Slot, error) {
	startAt = naive(startAt)
	candidates, _, err := s.candidateSlots(ctx, startAt)
	if err != nil {
		return nil, nil, err
	}
	if !containsStart(candidates, startAt) {
		return nil, nil, errs.ErrSlotNotOffered
	}

	b := booking.NewBooking(contact, startAt)
	if err := s.bookings.Reserve(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			fresh, slotsErr := s.AvailableSlots(ctx, startAt)
			if slotsErr != nil {
				fresh = nil
			}
			return nil, fresh, errs.Mark(err, errs.ErrSlotTaken)
		}
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	s.notifier.NotifyBookingConfirmed(ctx, BookingConfirmed{
		BookingID:  b.ID(),
		ClientName: contact.Name(),
		Phone:      contact.Phone(),
		StartsAt:   startAt,
	})

	return b, nil, nil
}

func (s *schedulerImpl) CancelBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.bookings.Cancel(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrBookingNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *schedulerImpl) Booking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (s *schedulerImpl) BookingsOn(ctx context.Context, date time.Time) ([]*booking.Booking, error) {
	list, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return list, nil
}

// candidateSlots validates the date window and generates the day's slot grid
// before any occupancy filtering.
func (s *schedulerImpl) candidateSlots(ctx context.Context, date time.Time) ([]booking.Slot, time.Time, error) {
	now := naive(s.clock.Now())
	day := midnight(naive(date))
	today := midnight(now)

	if day.Before(today) {
		return nil, day, errs.ErrPastDate
	}
	if day.After(today.Add(s.cfg.Lookahead())) {
		return nil, day, errs.ErrDateOutOfRange
	}

	week, err := s.availability.Current(ctx)
	if err != nil {
		return nil, day, err
	}

	iv, working := week.Interval(day.Weekday())
	if !working {
		return nil, day, nil
	}

	return booking.GenerateSlots(day, iv, now, s.cfg.Granularity(), s.cfg.SameDayBuffer()), day, nil
}

func filterBooked(slots []booking.Slot, booked []time.Time) []booking.Slot {
	if len(booked) == 0 {
		return slots
	}
	free := make([]booking.Slot, 0, len(slots))
	for _, slot := range slots {
		taken := false
		for _, t := range booked {
			if slot.Start.Equal(t) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	return free
}

func containsStart(slots []booking.Slot, startAt time.Time) bool {
	for _, slot := range slots {
		if slot.Start.Equal(startAt) {
			return true
		}
	}
	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// naive strips the timezone: appointment times are wall-clock values and the
// core never converts between zones. UTC is the neutral label pgx round-trips
// `timestamp` columns with.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
