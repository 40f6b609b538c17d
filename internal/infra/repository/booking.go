package repository

import (
	"context"
	"errors"
	"time"

	"consultbook/internal/domain/booking"
	"consultbook/internal/infra"
	"consultbook/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

// BookingRepository is the durable booking ledger. The partial unique index
// on (starts_at) for scheduled rows makes Reserve atomic: of two concurrent
// reservations for the same start only one insert can succeed.
type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Reserve(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (id, client_name, phone, starts_at, status)
		VALUES ($1, $2, $3, $4, $5)`,
		b.ID(), b.Contact().Name(), b.Contact().Phone(), b.StartsAt(), string(b.Status()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("slot already reserved", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to reserve booking", err)
	}
	return nil
}

// BookedStarts lists the start times of scheduled bookings on one day.
// Cancelled bookings never block a slot.
func (r *BookingRepository) BookedStarts(ctx context.Context, date time.Time) ([]time.Time, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.db.Query(ctx, `
		SELECT starts_at FROM bookings
		WHERE status = 'scheduled' AND starts_at >= $1 AND starts_at < $2
		ORDER BY starts_at`,
		dayStart, dayEnd,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked starts", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked start", err)
		}
		starts = append(starts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booked starts", err)
	}
	return starts, nil
}

func (r *BookingRepository) IsAvailable(ctx context.Context, startAt time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings WHERE status = 'scheduled' AND starts_at = $1
		)`,
		startAt,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot availability", err)
	}
	return !exists, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, client_name, phone, starts_at, status, created_at, updated_at
		FROM bookings WHERE id = $1`,
		id,
	)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) ListByDate(ctx context.Context, date time.Time) ([]*booking.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.db.Query(ctx, `
		SELECT id, client_name, phone, starts_at, status, created_at, updated_at
		FROM bookings
		WHERE starts_at >= $1 AND starts_at < $2
		ORDER BY starts_at`,
		dayStart, dayEnd,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

// Cancel marks a booking cancelled. Cancelling an already-cancelled booking
// is a successful no-op; only a missing id is an error.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status <> 'cancelled'`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to verify booking", err)
		}
		if !exists {
			return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id                   uuid.UUID
		name, phone, status  string
		startsAt             time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &phone, &startsAt, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	contact, err := booking.NewContact(name, phone)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(id, contact, startsAt, booking.Status(status), createdAt, updatedAt), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
