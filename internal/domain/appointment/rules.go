package appointment

import (
	"strings"
	"time"

	"clinic-appointments/internal/pkg/patch"
)

// Scheduling rules. All functions are pure: the caller supplies the
// current time and the set of potentially conflicting records, and
// nothing here touches the store.

// CheckCreate decides whether a candidate may be booked. A slot is a
// (doctor, exact timestamp) pair; only Scheduled records occupy it.
func CheckCreate(c Candidate, now time.Time, existing []Appointment) error {
	if !c.Date.After(now) {
		return ErrPastDate
	}
	if slotTaken(c.DoctorName, c.Date, 0, existing) {
		return ErrSlotConflict
	}
	return nil
}

// ApplyPatch merges a partial update onto an existing record and reports
// whether the appointment date changed. Omitted fields keep their values.
func ApplyPatch(a Appointment, p Patch) (Appointment, bool) {
	a.PatientName = strings.TrimSpace(patch.Coalesce(p.PatientName, a.PatientName))
	a.DoctorName = strings.TrimSpace(patch.Coalesce(p.DoctorName, a.DoctorName))
	a.Specialty = strings.TrimSpace(patch.Coalesce(p.Specialty, a.Specialty))

	dateChanged := p.Date != nil && !p.Date.Equal(a.Date)
	if p.Date != nil {
		a.Date = *p.Date
	}
	return a, dateChanged
}

// CheckUpdate validates the merged record produced by ApplyPatch. The
// date is only re-validated when the caller actually changed it; a record
// whose date drifted into the past stays editable otherwise.
func CheckUpdate(updated Appointment, dateChanged bool, now time.Time, existing []Appointment) error {
	if !dateChanged {
		return nil
	}
	if !updated.Date.After(now) {
		return ErrPastDate
	}
	if slotTaken(updated.DoctorName, updated.Date, updated.ID, existing) {
		return ErrSlotConflict
	}
	return nil
}

// CheckCancel enforces the terminal-state guards and the cancellation
// cutoff: cancelling is allowed up to CancelCutoff before the slot.
func CheckCancel(a Appointment, now time.Time) error {
	switch a.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	if now.After(a.Date.Add(-CancelCutoff)) {
		return ErrTooLateToCancel
	}
	return nil
}

// CheckComplete allows only Scheduled appointments to be marked done.
func CheckComplete(a Appointment) error {
	switch a.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	return nil
}

func slotTaken(doctorName string, date time.Time, selfID int64, existing []Appointment) bool {
	for _, other := range existing {
		if other.ID == selfID && selfID != 0 {
			continue
		}
		if other.Status == StatusScheduled && other.DoctorName == doctorName && other.Date.Equal(date) {
			return true
		}
	}
	return false
}
