package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointments/internal/domain/appointment"
	"clinic-appointments/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same queries run inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const pgErrCodeUniqueViolation = "23505"

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Create(ctx context.Context, tx DBTX, c appointment.Candidate) (int64, error) {
	query := `
		INSERT INTO appointments (patient_name, doctor_name, specialty, appointment_date, status)
		VALUES ($1, $2, $3, $4, 'Scheduled')
		RETURNING id
	`

	var id int64
	err := tx.QueryRow(ctx, query, c.PatientName, c.DoctorName, c.Specialty, c.Date).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, infra.WrapRepoErr("scheduled slot already taken", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to insert appointment", err)
	}

	return id, nil
}

// FindByID loads a record for mutation; callers run it inside the same
// transaction as the subsequent write.
func (r *AppointmentRepository) FindByID(ctx context.Context, tx DBTX, id int64) (*appointment.Appointment, error) {
	query := `
		SELECT id, patient_name, doctor_name, specialty, appointment_date, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	a, err := scanAppointment(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by id", err)
	}

	return a, nil
}

// FindBySlot returns the Scheduled appointments occupying the exact
// (doctor, timestamp) slot. Used by the conflict check; at most one row
// can match thanks to the partial unique index.
func (r *AppointmentRepository) FindBySlot(ctx context.Context, tx DBTX, doctorName string, date time.Time) ([]appointment.Appointment, error) {
	query := `
		SELECT id, patient_name, doctor_name, specialty, appointment_date, status, created_at, updated_at
		FROM appointments
		WHERE doctor_name = $1 AND appointment_date = $2 AND status = 'Scheduled'
	`

	rows, err := tx.Query(ctx, query, doctorName, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find appointments by slot", err)
	}
	defer rows.Close()

	var result []appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointment rows", err)
	}

	return result, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, tx DBTX, a *appointment.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_name = $2,
		    doctor_name = $3,
		    specialty = $4,
		    appointment_date = $5,
		    updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, a.ID, a.PatientName, a.DoctorName, a.Specialty, a.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("scheduled slot already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tx DBTX, id int64, status appointment.Status) error {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}

	return nil
}

// Delete removes the record permanently; there is no tombstone.
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}

	return nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var a appointment.Appointment
	var status string
	err := row.Scan(&a.ID, &a.PatientName, &a.DoctorName, &a.Specialty, &a.Date, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = appointment.Status(status)
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
