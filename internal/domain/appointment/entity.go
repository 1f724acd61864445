package appointment

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrPastDate         = errors.New("appointment date must be in the future")
	ErrSlotConflict     = errors.New("doctor already has a scheduled appointment at this time")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAlreadyCompleted = errors.New("appointment is already completed")
	ErrTooLateToCancel  = errors.New("appointments can only be cancelled up to 24 hours in advance")
	ErrNameTooShort     = errors.New("name must have at least 3 characters")
	ErrEmptySpecialty   = errors.New("specialty is required")
	ErrMissingDate      = errors.New("appointment date is required")
)

const MinNameLength = 3

// CancelCutoff is the minimum notice required before a scheduled
// appointment can be cancelled.
const CancelCutoff = 24 * time.Hour

// Appointment is the persisted record. IDs are assigned by the store;
// CreatedAt/UpdatedAt are maintained by the store, never by the rules.
type Appointment struct {
	ID          int64
	PatientName string
	DoctorName  string
	Specialty   string
	Date        time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Candidate is a validated create request before the store assigns an id.
type Candidate struct {
	PatientName string
	DoctorName  string
	Specialty   string
	Date        time.Time
}

func NewCandidate(patientName, doctorName, specialty string, date time.Time) (Candidate, error) {
	patientName = strings.TrimSpace(patientName)
	doctorName = strings.TrimSpace(doctorName)
	specialty = strings.TrimSpace(specialty)

	if len(patientName) < MinNameLength || len(doctorName) < MinNameLength {
		return Candidate{}, ErrNameTooShort
	}
	if specialty == "" {
		return Candidate{}, ErrEmptySpecialty
	}
	if date.IsZero() {
		return Candidate{}, ErrMissingDate
	}

	return Candidate{
		PatientName: patientName,
		DoctorName:  doctorName,
		Specialty:   specialty,
		Date:        date,
	}, nil
}

// Patch carries a partial update; nil fields leave the record unchanged.
// Status is deliberately absent: transitions go through Cancel/Complete.
type Patch struct {
	PatientName *string
	DoctorName  *string
	Specialty   *string
	Date        *time.Time
}

func (p Patch) Validate() error {
	if p.PatientName != nil && len(strings.TrimSpace(*p.PatientName)) < MinNameLength {
		return ErrNameTooShort
	}
	if p.DoctorName != nil && len(strings.TrimSpace(*p.DoctorName)) < MinNameLength {
		return ErrNameTooShort
	}
	if p.Specialty != nil && strings.TrimSpace(*p.Specialty) == "" {
		return ErrEmptySpecialty
	}
	if p.Date != nil && p.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
