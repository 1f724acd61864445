package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clinic-appointments/internal/domain/appointment"
	reqdto "clinic-appointments/internal/handler/dto/request"
	"clinic-appointments/internal/infra"
	"clinic-appointments/internal/infra/repository"
	"clinic-appointments/internal/pkg/clock"
	"clinic-appointments/internal/pkg/errs"
	"clinic-appointments/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDatabaseOperationFailed = errs.New("database operation failed")

type AppointmentRepository interface {
	Create(ctx context.Context, tx repository.DBTX, c appointment.Candidate) (int64, error)
	FindByID(ctx context.Context, tx repository.DBTX, id int64) (*appointment.Appointment, error)
	FindBySlot(ctx context.Context, tx repository.DBTX, doctorName string, date time.Time) ([]appointment.Appointment, error)
	Update(ctx context.Context, tx repository.DBTX, a *appointment.Appointment) error
	UpdateStatus(ctx context.Context, tx repository.DBTX, id int64, status appointment.Status) error
	Delete(ctx context.Context, id int64) error
}

type AppointmentCommands interface {
	Create(ctx context.Context, req reqdto.CreateAppointmentRequest) (*queries.AppointmentView, error)
	Update(ctx context.Context, id int64, req reqdto.UpdateAppointmentRequest) (*queries.AppointmentView, error)
	Cancel(ctx context.Context, id int64) (*queries.AppointmentView, error)
	Complete(ctx context.Context, id int64) (*queries.AppointmentView, error)
	Delete(ctx context.Context, id int64) error
}

type appointmentCommandsImpl struct {
	repo  AppointmentRepository
	views queries.AppointmentQueries
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewAppointmentCommands(
	repo AppointmentRepository,
	views queries.AppointmentQueries,
	pool *pgxpool.Pool,
	clock clock.Clock,
) AppointmentCommands {
	return &appointmentCommandsImpl{
		repo:  repo,
		views: views,
		pool:  pool,
		clock: clock,
	}
}

// Create books a new appointment. The slot check and the insert share one
// read-committed transaction; the partial unique index on the table backs
// the check, so a concurrent double-booking surfaces as ErrSlotConflict
// either way.
func (c *appointmentCommandsImpl) Create(ctx context.Context, req reqdto.CreateAppointmentRequest) (*queries.AppointmentView, error) {
	candidate, err := appointment.NewCandidate(req.PatientName, req.DoctorName, req.Specialty, req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	var id int64
	err = c.withTx(ctx, func(tx repository.DBTX) error {
		existing, err := c.repo.FindBySlot(ctx, tx, candidate.DoctorName, candidate.Date)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := appointment.CheckCreate(candidate, c.clock.Now(), existing); err != nil {
			return err
		}

		id, err = c.repo.Create(ctx, tx, candidate)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return appointment.ErrSlotConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, id)
}

// Update applies a partial update. A changed date is re-validated against
// the past-date and slot-conflict rules; omitted fields stay as they are.
func (c *appointmentCommandsImpl) Update(ctx context.Context, id int64, req reqdto.UpdateAppointmentRequest) (*queries.AppointmentView, error) {
	p := req.ToPatch()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err := c.withTx(ctx, func(tx repository.DBTX) error {
		current, err := c.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		updated, dateChanged := appointment.ApplyPatch(*current, p)

		var siblings []appointment.Appointment
		if dateChanged {
			siblings, err = c.repo.FindBySlot(ctx, tx, updated.DoctorName, updated.Date)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := appointment.CheckUpdate(updated, dateChanged, c.clock.Now(), siblings); err != nil {
			return err
		}

		if err := c.repo.Update(ctx, tx, &updated); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return appointment.ErrSlotConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, id)
}

func (c *appointmentCommandsImpl) Cancel(ctx context.Context, id int64) (*queries.AppointmentView, error) {
	return c.transition(ctx, id, appointment.StatusCancelled, func(a appointment.Appointment) error {
		return appointment.CheckCancel(a, c.clock.Now())
	})
}

func (c *appointmentCommandsImpl) Complete(ctx context.Context, id int64) (*queries.AppointmentView, error) {
	return c.transition(ctx, id, appointment.StatusCompleted, appointment.CheckComplete)
}

func (c *appointmentCommandsImpl) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return queries.ErrAppointmentNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *appointmentCommandsImpl) transition(
	ctx context.Context,
	id int64,
	target appointment.Status,
	check func(appointment.Appointment) error,
) (*queries.AppointmentView, error) {
	err := c.withTx(ctx, func(tx repository.DBTX) error {
		current, err := c.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := check(*current); err != nil {
			return err
		}

		if err := c.repo.UpdateStatus(ctx, tx, id, target); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.views.GetByID(ctx, id)
}

func (c *appointmentCommandsImpl) findForUpdate(ctx context.Context, tx repository.DBTX, id int64) (*appointment.Appointment, error) {
	current, err := c.repo.FindByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, queries.ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return current, nil
}

func (c *appointmentCommandsImpl) withTx(ctx context.Context, fn func(tx repository.DBTX) error) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
