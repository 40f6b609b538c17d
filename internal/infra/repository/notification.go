package repository

import (
	"context"
	"time"

	"consultbook/internal/infra"
	"consultbook/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationRepository writes outbox rows; a delivery worker outside this
// service drains them.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, payload, run_at)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), kind, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
