package components

import (
	"clinic-appointments/internal/pkg/clock"
	"clinic-appointments/internal/usecase/commands"
	"clinic-appointments/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		queries.NewAppointmentQueries,
		commands.NewAppointmentCommands,
	),
)
