package components

import (
	"talazo-api/internal/handler"
	"talazo-api/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAdminBookingHandler,
	),
	fx.Invoke(handler.NewRouter),
)
