package components

import (
	"clinic-appointments/internal/handler"
	"clinic-appointments/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAppointmentHandler,
	),
	fx.Invoke(handler.NewRouter),
)
