package components

import (
	"clinic-appointments/internal/infra/readstore"
	"clinic-appointments/internal/infra/repository"
	"clinic-appointments/internal/usecase/commands"
	"clinic-appointments/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		fx.Annotate(
			repository.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
		),
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
	),
)
