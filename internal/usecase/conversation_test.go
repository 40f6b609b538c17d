//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/infra/session"
	"consultbook/internal/pkg/clock"
	"consultbook/internal/pkg/errs"
	"consultbook/internal/usecase"
	usecasemock "consultbook/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type conversationFixture struct {
	scheduler    *usecasemock.MockScheduler
	sessions     *session.MemoryStore
	clock        *clock.MockClock
	conversation usecase.Conversation
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &conversationFixture{
		scheduler: usecasemock.NewMockScheduler(ctrl),
		sessions:  session.NewMemoryStore(),
		clock:     clock.NewMockClock(testNow),
	}
	f.conversation = usecase.NewConversation(f.scheduler, f.sessions, f.clock)
	return f
}

// startSession drives a fresh conversation to StepChoosingDate.
func (f *conversationFixture) startSession(t *testing.T) usecase.Session {
	t.Helper()
	f.scheduler.EXPECT().AvailableSlots(gomock.Any(), gomock.Any()).Return(nil, nil)
	s, err := f.conversation.Start(context.Background(), testContact(t))
	require.NoError(t, err)
	return s
}

func daySlots(day time.Time, hours ...int) []booking.Slot {
	slots := make([]booking.Slot, len(hours))
	for i, h := range hours {
		slots[i] = booking.Slot{Start: day.Add(time.Duration(h) * time.Hour)}
	}
	return slots
}

func TestConversation_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a session at date selection", func(t *testing.T) {
		f := newConversationFixture(t)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), gomock.Any()).Return(nil, nil)

		s, err := f.conversation.Start(ctx, testContact(t))
		require.NoError(t, err)
		assert.Equal(t, usecase.StepChoosingDate, s.Step)
		assert.NotEqual(t, uuid.Nil, s.ID)

		stored, ok := f.sessions.Get(s.ID)
		require.True(t, ok)
		assert.Equal(t, s, stored)
	})

	t.Run("unconfigured schedule refuses to start", func(t *testing.T) {
		f := newConversationFixture(t)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), gomock.Any()).Return(nil, errs.ErrNoSchedule)

		_, err := f.conversation.Start(ctx, testContact(t))
		assert.ErrorIs(t, err, errs.ErrNoSchedule)
		assert.Equal(t, 0, f.sessions.Len())
	})
}

func TestConversation_ChooseDate(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("offers slots and advances", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)
		slots := daySlots(tuesday, 10, 11, 12)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(slots, nil)

		res, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeSlotsOffered, res.Outcome)
		assert.Equal(t, usecase.StepChoosingSlot, res.Session.Step)
		assert.Equal(t, slots, res.Slots)
		assert.Equal(t, slots, res.Session.Offered)
	})

	t.Run("rejections keep the session at date selection", func(t *testing.T) {
		cases := []struct {
			name    string
			err     error
			slots   []booking.Slot
			outcome usecase.Outcome
		}{
			{name: "past date", err: errs.ErrPastDate, outcome: usecase.OutcomePastDate},
			{name: "out of range", err: errs.ErrDateOutOfRange, outcome: usecase.OutcomeOutOfRange},
			{name: "fully booked", slots: nil, outcome: usecase.OutcomeNoSlots},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newConversationFixture(t)
				s := f.startSession(t)
				f.scheduler.EXPECT().AvailableSlots(gomock.Any(), gomock.Any()).Return(tc.slots, tc.err)

				res, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
				require.NoError(t, err)
				assert.Equal(t, tc.outcome, res.Outcome)
				assert.Equal(t, usecase.StepChoosingDate, res.Session.Step)
			})
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newConversationFixture(t)
		_, err := f.conversation.ChooseDate(ctx, uuid.New(), tuesday)
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("wrong step", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), gomock.Any()).Return(daySlots(tuesday, 10), nil)
		_, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
		require.NoError(t, err)

		_, err = f.conversation.ChooseDate(ctx, s.ID, tuesday)
		assert.ErrorIs(t, err, errs.ErrInvalidStep)
	})
}

func TestConversation_ChooseSlot(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// chooseDate drives a session to StepChoosingSlot with the given offer.
	chooseDate := func(t *testing.T, f *conversationFixture, slots []booking.Slot) usecase.Session {
		t.Helper()
		s := f.startSession(t)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(slots, nil)
		res, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
		require.NoError(t, err)
		return res.Session
	}

	t.Run("offered slot moves to confirmation", func(t *testing.T) {
		f := newConversationFixture(t)
		s := chooseDate(t, f, daySlots(tuesday, 10, 11))

		res, err := f.conversation.ChooseSlot(ctx, s.ID, tuesday.Add(11*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeConfirmWait, res.Outcome)
		assert.Equal(t, usecase.StepConfirming, res.Session.Step)
		assert.Equal(t, tuesday.Add(11*time.Hour), res.Session.Selected)
	})

	t.Run("stale slot refreshes the offer", func(t *testing.T) {
		f := newConversationFixture(t)
		s := chooseDate(t, f, daySlots(tuesday, 10, 11))

		fresh := daySlots(tuesday, 10, 12)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(fresh, nil)

		res, err := f.conversation.ChooseSlot(ctx, s.ID, tuesday.Add(15*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeSlotTaken, res.Outcome)
		assert.Equal(t, usecase.StepChoosingSlot, res.Session.Step)
		assert.Equal(t, fresh, res.Session.Offered)
		assert.True(t, res.Session.Selected.IsZero())
	})

	t.Run("wrong step", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)

		_, err := f.conversation.ChooseSlot(ctx, s.ID, tuesday.Add(11*time.Hour))
		assert.ErrorIs(t, err, errs.ErrInvalidStep)
	})
}

func TestConversation_Confirm(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	startAt := tuesday.Add(11 * time.Hour)

	// toConfirming drives a session to StepConfirming on startAt.
	toConfirming := func(t *testing.T, f *conversationFixture) usecase.Session {
		t.Helper()
		s := f.startSession(t)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(daySlots(tuesday, 10, 11), nil)
		res, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
		require.NoError(t, err)
		res, err = f.conversation.ChooseSlot(ctx, s.ID, startAt)
		require.NoError(t, err)
		return res.Session
	}

	t.Run("booking succeeds and finishes the session", func(t *testing.T) {
		f := newConversationFixture(t)
		s := toConfirming(t, f)

		b := booking.NewBooking(testContact(t), startAt)
		f.scheduler.EXPECT().Book(gomock.Any(), startAt, gomock.Any()).Return(b, nil, nil)

		res, err := f.conversation.Confirm(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeBooked, res.Outcome)
		assert.Equal(t, usecase.StepDone, res.Session.Step)
		require.NotNil(t, res.Session.BookingID)
		assert.Equal(t, b.ID(), *res.Session.BookingID)
		assert.Equal(t, b, res.Booking)
	})

	t.Run("lost race falls back to slot selection", func(t *testing.T) {
		f := newConversationFixture(t)
		s := toConfirming(t, f)

		fresh := daySlots(tuesday, 10, 14)
		f.scheduler.EXPECT().Book(gomock.Any(), startAt, gomock.Any()).
			Return(nil, fresh, errs.Mark(errors.New("duplicate key"), errs.ErrSlotTaken))

		res, err := f.conversation.Confirm(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeSlotTaken, res.Outcome)
		assert.Equal(t, usecase.StepChoosingSlot, res.Session.Step)
		assert.Equal(t, fresh, res.Session.Offered)
		assert.True(t, res.Session.Selected.IsZero())
	})

	t.Run("finished session refuses further steps", func(t *testing.T) {
		f := newConversationFixture(t)
		s := toConfirming(t, f)

		b := booking.NewBooking(testContact(t), startAt)
		f.scheduler.EXPECT().Book(gomock.Any(), startAt, gomock.Any()).Return(b, nil, nil)
		_, err := f.conversation.Confirm(ctx, s.ID)
		require.NoError(t, err)

		_, err = f.conversation.Confirm(ctx, s.ID)
		assert.ErrorIs(t, err, errs.ErrSessionFinished)
	})

	t.Run("wrong step", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)

		_, err := f.conversation.Confirm(ctx, s.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidStep)
	})
}

func TestConversation_Back(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("returns to date selection and clears the pick", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)
		f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(daySlots(tuesday, 10, 11), nil)
		_, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
		require.NoError(t, err)

		res, err := f.conversation.Back(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeBackToDate, res.Outcome)
		assert.Equal(t, usecase.StepChoosingDate, res.Session.Step)
		assert.True(t, res.Session.Date.IsZero())
		assert.Empty(t, res.Session.Offered)
	})

	t.Run("not available at date selection", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)

		_, err := f.conversation.Back(ctx, s.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidStep)
	})
}

func TestConversation_Cancel(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("cancel works from every live step", func(t *testing.T) {
		steps := []struct {
			name  string
			drive func(t *testing.T, f *conversationFixture) uuid.UUID
		}{
			{
				name: "choosing date",
				drive: func(t *testing.T, f *conversationFixture) uuid.UUID {
					return f.startSession(t).ID
				},
			},
			{
				name: "choosing slot",
				drive: func(t *testing.T, f *conversationFixture) uuid.UUID {
					s := f.startSession(t)
					f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(daySlots(tuesday, 10), nil)
					res, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
					require.NoError(t, err)
					return res.Session.ID
				},
			},
			{
				name: "confirming",
				drive: func(t *testing.T, f *conversationFixture) uuid.UUID {
					s := f.startSession(t)
					f.scheduler.EXPECT().AvailableSlots(gomock.Any(), tuesday).Return(daySlots(tuesday, 10), nil)
					_, err := f.conversation.ChooseDate(ctx, s.ID, tuesday)
					require.NoError(t, err)
					_, err = f.conversation.ChooseSlot(ctx, s.ID, tuesday.Add(10*time.Hour))
					require.NoError(t, err)
					return s.ID
				},
			},
		}
		for _, tc := range steps {
			t.Run(tc.name, func(t *testing.T) {
				f := newConversationFixture(t)
				id := tc.drive(t, f)

				res, err := f.conversation.Cancel(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, usecase.OutcomeCancelled, res.Outcome)
				assert.Equal(t, usecase.StepCancelled, res.Session.Step)
				assert.Equal(t, 0, f.sessions.Len())
			})
		}
	})

	t.Run("cancelled session is gone", func(t *testing.T) {
		f := newConversationFixture(t)
		s := f.startSession(t)
		_, err := f.conversation.Cancel(ctx, s.ID)
		require.NoError(t, err)

		_, err = f.conversation.Cancel(ctx, s.ID)
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})
}
