package components

import (
	"consultbook/internal/infra/db"
	"consultbook/internal/infra/notifier"
	"consultbook/internal/infra/repository"
	"consultbook/internal/infra/session"
	"consultbook/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repository.NewAvailabilityRepository,
			fx.As(new(usecase.AvailabilityRepository)),
		),
		repository.NewNotificationRepository,
		fx.Annotate(
			notifier.NewQueueNotifier,
			fx.As(new(usecase.Notifier)),
		),
		fx.Annotate(
			session.NewMemoryStore,
			fx.As(new(usecase.SessionStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
