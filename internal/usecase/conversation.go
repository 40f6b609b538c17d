package usecase

import (
	"context"
	"errors"
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/pkg/clock"
	"consultbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type Step string

const (
	StepChoosingDate Step = "choosing_date"
	StepChoosingSlot Step = "choosing_slot"
	StepConfirming   Step = "confirming"
	StepDone         Step = "done"
	StepCancelled    Step = "cancelled"
)

func (s Step) Terminal() bool {
	return s == StepDone || s == StepCancelled
}

// Outcome tells the transport what to render after a transition.
type Outcome string

const (
	OutcomeSlotsOffered Outcome = "slots_offered"
	OutcomePastDate     Outcome = "past_date"
	OutcomeOutOfRange   Outcome = "out_of_range"
	OutcomeNoSlots      Outcome = "no_slots"
	OutcomeSlotTaken    Outcome = "slot_taken"
	OutcomeConfirmWait  Outcome = "awaiting_confirmation"
	OutcomeBooked       Outcome = "booked"
	OutcomeBackToDate   Outcome = "back_to_date"
	OutcomeCancelled    Outcome = "cancelled"
)

// Session is the whole conversational state, threaded explicitly through
// every transition instead of living in ambient transport context.
type Session struct {
	ID        uuid.UUID
	Contact   booking.Contact
	Step      Step
	Date      time.Time      // selected day, zero until chosen
	Selected  time.Time      // selected slot start, zero until chosen
	Offered   []booking.Slot // slots shown at the last listing
	BookingID *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Result is the outcome of one conversation transition.
type Result struct {
	Session Session
	Outcome Outcome
	Slots   []booking.Slot
	Booking *booking.Booking
}

// Conversation drives a client through date pick, slot pick and confirmation.
// Every step accepts cancel; no step can be skipped.
type Conversation interface {
	Start(ctx context.Context, contact booking.Contact) (Session, error)
	ChooseDate(ctx context.Context, id uuid.UUID, date time.Time) (Result, error)
	ChooseSlot(ctx context.Context, id uuid.UUID, startAt time.Time) (Result, error)
	Confirm(ctx context.Context, id uuid.UUID) (Result, error)
	Back(ctx context.Context, id uuid.UUID) (Result, error)
	Cancel(ctx context.Context, id uuid.UUID) (Result, error)
}

type conversationImpl struct {
	scheduler Scheduler
	sessions  SessionStore
	clock     clock.Clock
}

func NewConversation(scheduler Scheduler, sessions SessionStore, clk clock.Clock) Conversation {
	return &conversationImpl{
		scheduler: scheduler,
		sessions:  sessions,
		clock:     clk,
	}
}

func (c *conversationImpl) Start(ctx context.Context, contact booking.Contact) (Session, error) {
	// Surface a never-configured schedule before the client picks anything.
	if _, err := c.scheduler.AvailableSlots(ctx, c.clock.Now()); err != nil {
		return Session{}, err
	}

	now := c.clock.Now()
	session := Session{
		ID:        uuid.New(),
		Contact:   contact,
		Step:      StepChoosingDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.sessions.Put(session)
	return session, nil
}

func (c *conversationImpl) ChooseDate(ctx context.Context, id uuid.UUID, date time.Time) (Result, error) {
	session, err := c.load(id)
	if err != nil {
		return Result{}, err
	}
	if session.Step != StepChoosingDate {
		return Result{}, errs.ErrInvalidStep
	}

	slots, err := c.scheduler.AvailableSlots(ctx, date)
	switch {
	case errors.Is(err, errs.ErrPastDate):
		return c.stay(session, OutcomePastDate), nil
	case errors.Is(err, errs.ErrDateOutOfRange):
		return c.stay(session, OutcomeOutOfRange), nil
	case err != nil:
		return Result{}, err
	}

	if len(slots) == 0 {
		return c.stay(session, OutcomeNoSlots), nil
	}

	session.Date = date
	session.Selected = time.Time{}
	session.Offered = slots
	session.Step = StepChoosingSlot
	c.store(&session)

	return Result{Session: session, Outcome: OutcomeSlotsOffered, Slots: slots}, nil
}

func (c *conversationImpl) ChooseSlot(ctx context.Context, id uuid.UUID, startAt time.Time) (Result, error) {
	session, err := c.load(id)
	if err != nil {
		return Result{}, err
	}
	if session.Step != StepChoosingSlot {
		return Result{}, errs.ErrInvalidStep
	}

	if !offered(session.Offered, startAt) {
		// Stale pick: the slot list moved under the client. Refresh and
		// let them pick again instead of silently ignoring the tap.
		return c.refreshSlots(ctx, session)
	}

	session.Selected = startAt
	session.Step = StepConfirming
	c.store(&session)

	return Result{Session: session, Outcome: OutcomeConfirmWait}, nil
}

func (c *conversationImpl) Confirm(ctx context.Context, id uuid.UUID) (Result, error) {
	session, err := c.load(id)
	if err != nil {
		return Result{}, err
	}
	if session.Step != StepConfirming {
		return Result{}, errs.ErrInvalidStep
	}

	b, fresh, err := c.scheduler.Book(ctx, session.Selected, session.Contact)
	switch {
	case errors.Is(err, errs.ErrSlotTaken), errors.Is(err, errs.ErrSlotNotOffered):
		// Lost the race between listing and booking. Fall back to slot
		// selection with an already-refreshed list.
		if fresh == nil {
			if fresh, err = c.scheduler.AvailableSlots(ctx, session.Date); err != nil {
				return Result{}, err
			}
		}
		session.Selected = time.Time{}
		session.Offered = fresh
		session.Step = StepChoosingSlot
		c.store(&session)
		return Result{Session: session, Outcome: OutcomeSlotTaken, Slots: fresh}, nil
	case err != nil:
		return Result{}, err
	}

	bookingID := b.ID()
	session.BookingID = &bookingID
	session.Step = StepDone
	c.store(&session)

	return Result{Session: session, Outcome: OutcomeBooked, Booking: b}, nil
}

func (c *conversationImpl) Back(ctx context.Context, id uuid.UUID) (Result, error) {
	session, err := c.load(id)
	if err != nil {
		return Result{}, err
	}
	if session.Step != StepChoosingSlot && session.Step != StepConfirming {
		return Result{}, errs.ErrInvalidStep
	}

	// Explicit re-entry discards the in-progress selection.
	session.Date = time.Time{}
	session.Selected = time.Time{}
	session.Offered = nil
	session.Step = StepChoosingDate
	c.store(&session)

	return Result{Session: session, Outcome: OutcomeBackToDate}, nil
}

func (c *conversationImpl) Cancel(ctx context.Context, id uuid.UUID) (Result, error) {
	session, err := c.load(id)
	if err != nil {
		return Result{}, err
	}

	// Cancellation is local: ledger writes only happen on confirm, so there
	// is never anything to unwind here.
	session.Date = time.Time{}
	session.Selected = time.Time{}
	session.Offered = nil
	session.Step = StepCancelled
	session.UpdatedAt = c.clock.Now()
	c.sessions.Delete(session.ID)

	return Result{Session: session, Outcome: OutcomeCancelled}, nil
}

func (c *conversationImpl) load(id uuid.UUID) (Session, error) {
	session, ok := c.sessions.Get(id)
	if !ok {
		return Session{}, errs.ErrSessionNotFound
	}
	if session.Step.Terminal() {
		return Session{}, errs.ErrSessionFinished
	}
	return session, nil
}

func (c *conversationImpl) store(session *Session) {
	session.UpdatedAt = c.clock.Now()
	c.sessions.Put(*session)
}

func (c *conversationImpl) stay(session Session, outcome Outcome) Result {
	return Result{Session: session, Outcome: outcome}
}

func (c *conversationImpl) refreshSlots(ctx context.Context, session Session) (Result, error) {
	fresh, err := c.scheduler.AvailableSlots(ctx, session.Date)
	if err != nil {
		return Result{}, err
	}
	session.Selected = time.Time{}
	session.Offered = fresh
	c.store(&session)
	return Result{Session: session, Outcome: OutcomeSlotTaken, Slots: fresh}, nil
}

func offered(slots []booking.Slot, startAt time.Time) bool {
	for _, slot := range slots {
		if slot.Start.Equal(startAt) {
			return true
		}
	}
	return false
}
