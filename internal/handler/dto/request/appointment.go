package request

import (
	"time"

	"clinic-appointments/internal/domain/appointment"
)

type CreateAppointmentRequest struct {
	PatientName     string    `json:"patientName" binding:"required,min=3"`
	DoctorName      string    `json:"doctorName" binding:"required,min=3"`
	Specialty       string    `json:"specialty" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
}

// UpdateAppointmentRequest carries a partial update. Status is not
// accepted here: transitions go through the cancel/complete endpoints,
// and unknown JSON fields are rejected at the decoder level.
type UpdateAppointmentRequest struct {
	PatientName     *string    `json:"patientName" binding:"omitempty,min=3"`
	DoctorName      *string    `json:"doctorName" binding:"omitempty,min=3"`
	Specialty       *string    `json:"specialty" binding:"omitempty,min=1"`
	AppointmentDate *time.Time `json:"appointmentDate"`
}

func (r UpdateAppointmentRequest) ToPatch() appointment.Patch {
	return appointment.Patch{
		PatientName: r.PatientName,
		DoctorName:  r.DoctorName,
		Specialty:   r.Specialty,
		Date:        r.AppointmentDate,
	}
}
