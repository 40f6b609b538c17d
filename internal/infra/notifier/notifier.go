package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"consultbook/internal/infra/repository"
	"consultbook/internal/usecase"
)

const kindBookingConfirmed = "booking_confirmed"

// QueueNotifier implements the Notifier port by writing outbox jobs. A
// failed enqueue is logged and dropped; the booking itself always stands.
type QueueNotifier struct {
	jobs *repository.NotificationRepository
}

func NewQueueNotifier(jobs *repository.NotificationRepository) *QueueNotifier {
	return &QueueNotifier{jobs: jobs}
}

func (n *QueueNotifier) NotifyBookingConfirmed(ctx context.Context, event usecase.BookingConfirmed) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode booking confirmation", "booking_id", event.BookingID, "error", err)
		return
	}

	if err := n.jobs.CreateJob(ctx, kindBookingConfirmed, payload, time.Now()); err != nil {
		slog.Error("failed to enqueue booking confirmation",
			"booking_id", event.BookingID,
			"error", err)
	}
}
