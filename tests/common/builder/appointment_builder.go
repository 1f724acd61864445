//go:build unit || e2e

package builder

import (
	"time"

	domappt "clinic-appointments/internal/domain/appointment"
	reqdto "clinic-appointments/internal/handler/dto/request"
	"clinic-appointments/internal/usecase/queries"
)

type AppointmentBuilder struct {
	ID          int64
	PatientName string
	DoctorName  string
	Specialty   string
	Date        time.Time
	Status      domappt.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &AppointmentBuilder{
		ID:          1,
		PatientName: "Maria Silva",
		DoctorName:  "Dr. Carlos Souza",
		Specialty:   "Cardiology",
		Date:        now.Add(72 * time.Hour),
		Status:      domappt.StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Build methods
func (b *AppointmentBuilder) BuildDomain() domappt.Appointment {
	return domappt.Appointment{
		ID:          b.ID,
		PatientName: b.PatientName,
		DoctorName:  b.DoctorName,
		Specialty:   b.Specialty,
		Date:        b.Date,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *AppointmentBuilder) BuildCandidate() (domappt.Candidate, error) {
	return domappt.NewCandidate(b.PatientName, b.DoctorName, b.Specialty, b.Date)
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		PatientName:     b.PatientName,
		DoctorName:      b.DoctorName,
		Specialty:       b.Specialty,
		AppointmentDate: b.Date,
	}
}

func (b *AppointmentBuilder) BuildUpdateRequestDTO() reqdto.UpdateAppointmentRequest {
	patientName := b.PatientName
	doctorName := b.DoctorName
	specialty := b.Specialty
	date := b.Date
	return reqdto.UpdateAppointmentRequest{
		PatientName:     &patientName,
		DoctorName:      &doctorName,
		Specialty:       &specialty,
		AppointmentDate: &date,
	}
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:          b.ID,
		PatientName: b.PatientName,
		DoctorName:  b.DoctorName,
		Specialty:   b.Specialty,
		Date:        b.Date,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *AppointmentBuilder) WithID(id int64) *AppointmentBuilder {
	b.ID = id
	return b
}

func (b *AppointmentBuilder) WithPatientName(name string) *AppointmentBuilder {
	b.PatientName = name
	return b
}

func (b *AppointmentBuilder) WithDoctorName(name string) *AppointmentBuilder {
	b.DoctorName = name
	return b
}

func (b *AppointmentBuilder) WithSpecialty(specialty string) *AppointmentBuilder {
	b.Specialty = specialty
	return b
}

func (b *AppointmentBuilder) WithDate(date time.Time) *AppointmentBuilder {
	b.Date = date
	return b
}

func (b *AppointmentBuilder) WithStatus(status domappt.Status) *AppointmentBuilder {
	b.Status = status
	return b
}

func (b *AppointmentBuilder) AsCancelled() *AppointmentBuilder {
	b.Status = domappt.StatusCancelled
	return b
}

func (b *AppointmentBuilder) AsCompleted() *AppointmentBuilder {
	b.Status = domappt.StatusCompleted
	return b
}
