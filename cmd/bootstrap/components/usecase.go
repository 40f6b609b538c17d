package components

import (
	"consultbook/internal/pkg/clock"
	"consultbook/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAvailabilityUseCase,
		usecase.NewScheduler,
		usecase.NewConversation,
	),
)
