package queries

import (
	"context"
	"time"

	"clinic-appointments/internal/infra"
	"clinic-appointments/internal/pkg/errs"
)

var ErrAppointmentNotFound = errs.New("appointment not found")

// AppointmentView is the read model served over the API.
type AppointmentView struct {
	ID          int64     `json:"id"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Specialty   string    `json:"specialty"`
	Date        time.Time `json:"appointmentDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id int64) (*AppointmentView, error)
	FindAll(ctx context.Context) ([]*AppointmentView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id int64) (*AppointmentView, error)
	// List returns every appointment ordered by appointment date ascending.
	List(ctx context.Context) ([]*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	store AppointmentReadStore
}

func NewAppointmentQueries(store AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{store: store}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id int64) (*AppointmentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Wrap(err, "failed to find appointment")
	}
	return view, nil
}

func (q *appointmentQueriesImpl) List(ctx context.Context) ([]*AppointmentView, error) {
	views, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list appointments")
	}
	return views, nil
}
