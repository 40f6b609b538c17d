package repository

import (
	"context"
	"time"

	"consultbook/internal/domain/schedule"
	"consultbook/internal/infra"
	"consultbook/internal/infra/db"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityRepository persists the weekly schedule. One row per weekday;
// inactive rows are days off. An empty table means the schedule was never
// configured, which is distinct from a week of days off.
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

// Load returns nil without error when no schedule has ever been saved.
func (r *AvailabilityRepository) Load(ctx context.Context) (*schedule.Week, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, opens_at, closes_at, active
		FROM availability
		ORDER BY weekday`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load availability", err)
	}
	defer rows.Close()

	days := make(map[time.Weekday]schedule.DayInput)
	configured := false
	for rows.Next() {
		var (
			weekday           int
			opensAt, closesAt pgtype.Time
			active            bool
		)
		if err := rows.Scan(&weekday, &opensAt, &closesAt, &active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability row", err)
		}
		configured = true
		if !active || !opensAt.Valid || !closesAt.Valid {
			continue
		}
		days[weekdayFromIndex(weekday)] = schedule.DayInput{
			Start: timeOfDay(opensAt),
			End:   timeOfDay(closesAt),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate availability rows", err)
	}
	if !configured {
		return nil, nil
	}

	week, err := schedule.NewWeek(days)
	if err != nil {
		return nil, infra.WrapRepoErr("stored availability is invalid", err)
	}
	return &week, nil
}

// Replace swaps the whole week in one transaction.
func (r *AvailabilityRepository) Replace(ctx context.Context, week schedule.Week) error {
	_, err := db.RunInTx(ctx, r.pool, func(tx db.DBTX) (struct{}, error) {
		if _, err := tx.Exec(ctx, `DELETE FROM availability`); err != nil {
			return struct{}{}, infra.WrapRepoErr("failed to clear availability", err)
		}

		for idx := 0; idx < 7; idx++ {
			day := weekdayFromIndex(idx)
			iv, working := week.Interval(day)

			var opensAt, closesAt pgtype.Time
			if working {
				opensAt = wallClock(iv.Start())
				closesAt = wallClock(iv.End())
			}

			if _, err := tx.Exec(ctx, `
				INSERT INTO availability (weekday, opens_at, closes_at, active)
				VALUES ($1, $2, $3, $4)`,
				idx, opensAt, closesAt, working,
			); err != nil {
				return struct{}{}, infra.WrapRepoErr("failed to insert availability row", err)
			}
		}
		return struct{}{}, nil
	})
	return err
}

// Monday-first index used by the availability table.
func weekdayFromIndex(idx int) time.Weekday {
	return time.Weekday((idx + 1) % 7)
}

func timeOfDay(t pgtype.Time) schedule.TimeOfDay {
	minutes := int(t.Microseconds / int64(time.Minute/time.Microsecond))
	tod, _ := schedule.NewTimeOfDay(minutes/60, minutes%60)
	return tod
}

func wallClock(tod schedule.TimeOfDay) pgtype.Time {
	return pgtype.Time{
		Microseconds: int64(tod.Minutes()) * int64(time.Minute/time.Microsecond),
		Valid:        true,
	}
}
