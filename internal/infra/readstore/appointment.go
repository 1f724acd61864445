package readstore

import (
	"context"
	"errors"

	"clinic-appointments/internal/infra"
	"clinic-appointments/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentColumns = `
	id, patient_name, doctor_name, specialty, appointment_date, status, created_at, updated_at
`

type AppointmentReadStore struct {
	pool *pgxpool.Pool
}

func NewAppointmentReadStore(pool *pgxpool.Pool) *AppointmentReadStore {
	return &AppointmentReadStore{pool: pool}
}

func (r *AppointmentReadStore) FindByID(ctx context.Context, id int64) (*queries.AppointmentView, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	view, err := scanView(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by id", err)
	}

	return view, nil
}

func (r *AppointmentReadStore) FindAll(ctx context.Context) ([]*queries.AppointmentView, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY appointment_date ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	result := make([]*queries.AppointmentView, 0)
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointment rows", err)
	}

	return result, nil
}

func scanView(row pgx.Row) (*queries.AppointmentView, error) {
	var v queries.AppointmentView
	err := row.Scan(&v.ID, &v.PatientName, &v.DoctorName, &v.Specialty, &v.Date, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
