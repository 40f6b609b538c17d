package components

import (
	"consultbook/internal/handler"
	"consultbook/internal/handler/api"
	"consultbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewBookingHandler,
		api.NewScheduleHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
