package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"consultbook/internal/domain/schedule"
	"consultbook/internal/pkg/errs"
)

type AvailabilityUseCase interface {
	// Current returns the active weekly schedule by value.
	// Fails with ErrNoSchedule when none was ever configured.
	Current(ctx context.Context) (schedule.Week, error)
	// Replace validates and installs a whole new week. Readers never observe
	// a partially applied schedule.
	Replace(ctx context.Context, days map[time.Weekday]schedule.DayInput) (schedule.Week, error)
}

type availabilityUseCaseImpl struct {
	repo AvailabilityRepository

	// current is swapped wholesale after a successful persist; readers take
	// the pointer once and work on an immutable value.
	current atomic.Pointer[schedule.Week]
	loaded  atomic.Bool
}

func NewAvailabilityUseCase(repo AvailabilityRepository) AvailabilityUseCase {
	return &availabilityUseCaseImpl{repo: repo}
}

func (u *availabilityUseCaseImpl) Current(ctx context.Context) (schedule.Week, error) {
	if week := u.current.Load(); week != nil {
		return *week, nil
	}

	if !u.loaded.Load() {
		week, err := u.repo.Load(ctx)
		if err != nil {
			return schedule.Week{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		u.loaded.Store(true)
		if week != nil {
			u.current.Store(week)
			return *week, nil
		}
	}

	return schedule.Week{}, errs.ErrNoSchedule
}

func (u *availabilityUseCaseImpl) Replace(ctx context.Context, days map[time.Weekday]schedule.DayInput) (schedule.Week, error) {
	week, err := schedule.NewWeek(days)
	if err != nil {
		return schedule.Week{}, errs.Mark(err, errs.ErrInvalidSchedule)
	}

	if err := u.repo.Replace(ctx, week); err != nil {
		return schedule.Week{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.loaded.Store(true)
	u.current.Store(&week)
	return week, nil
}
