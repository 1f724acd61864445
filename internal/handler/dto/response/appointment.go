package response

import (
	"time"

	"clinic-appointments/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type AppointmentResponse struct {
	ID          int64     `json:"id"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Specialty   string    `json:"specialty"`
	Date        time.Time `json:"appointmentDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromAppointmentView(view *queries.AppointmentView) *AppointmentResponse {
	resp := &AppointmentResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromAppointmentViews(views []*queries.AppointmentView) []*AppointmentResponse {
	result := make([]*AppointmentResponse, len(views))
	for i, view := range views {
		result[i] = FromAppointmentView(view)
	}
	return result
}
