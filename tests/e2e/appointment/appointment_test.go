//go:build e2e

package appointment_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"clinic-appointments/internal/handler/dto/request"
	"clinic-appointments/internal/handler/dto/response"
	"clinic-appointments/tests/common/builder"
	"clinic-appointments/tests/common/httptest"
	"clinic-appointments/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const appointmentsURL = "/appointments"

type AppointmentSuite struct {
	e2e.SharedSuite
}

func (s *AppointmentSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestAppointmentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AppointmentSuite))
}

func futureSlot(hours int) time.Time {
	return time.Now().UTC().Add(time.Duration(hours) * time.Hour).Truncate(time.Second)
}

func (s *AppointmentSuite) createAppointment(reqBody request.CreateAppointmentRequest) response.AppointmentResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody)
	require.Equal(t, http.StatusCreated, w.Code, "Should create appointment successfully: %s", w.Body.String())

	var created response.AppointmentResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	require.NotZero(t, created.ID, "Appointment ID should be assigned")
	return created
}

// =============================================================================
// TestCreateAppointment - Booking API tests
// =============================================================================

func (s *AppointmentSuite) TestCreateAppointment() {
	s.Run("Normal case: valid booking is persisted with Scheduled status", func() {
		t := s.T()
		slot := futureSlot(72)

		reqBody := builder.NewAppointmentBuilder().WithDate(slot).BuildCreateRequestDTO()
		created := s.createAppointment(reqBody)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("%s/%d", appointmentsURL, created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var actual response.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &actual)

		expected := &response.AppointmentResponse{
			ID:          created.ID,
			PatientName: reqBody.PatientName,
			DoctorName:  reqBody.DoctorName,
			Specialty:   reqBody.Specialty,
			Status:      "Scheduled",
		}

		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.AppointmentResponse{}, "Date", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Appointment response mismatch (-want +got):\n%s", diff)
		}
		require.True(t, actual.Date.Equal(slot), "Stored date should match the requested slot")
		require.False(t, actual.CreatedAt.IsZero(), "createdAt should be set by the store")
	})

	s.Run("Error case: booking in the past is rejected", func() {
		t := s.T()

		reqBody := builder.NewAppointmentBuilder().
			WithDate(time.Now().UTC().Add(-time.Hour).Truncate(time.Second)).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Appointment date must be in the future")
	})

	s.Run("Error case: double booking the same doctor and slot is rejected", func() {
		t := s.T()
		slot := futureSlot(72)

		s.createAppointment(builder.NewAppointmentBuilder().WithDate(slot).BuildCreateRequestDTO())

		duplicate := builder.NewAppointmentBuilder().
			WithPatientName("Bruno Alves").
			WithDate(slot).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, duplicate)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Doctor already has a scheduled appointment at this time")
	})

	s.Run("Normal case: cancelled slot can be booked again", func() {
		t := s.T()
		slot := futureSlot(72)

		first := s.createAppointment(builder.NewAppointmentBuilder().WithDate(slot).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf("%s/%d/cancel", appointmentsURL, first.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, "Cancellation should succeed: %s", w.Body.String())

		rebooked := builder.NewAppointmentBuilder().
			WithPatientName("Bruno Alves").
			WithDate(slot).
			BuildCreateRequestDTO()
		second := s.createAppointment(rebooked)
		require.NotEqual(t, first.ID, second.ID)
	})

	s.Run("Normal case: same slot under a different doctor is allowed", func() {
		t := s.T()
		slot := futureSlot(72)

		s.createAppointment(builder.NewAppointmentBuilder().WithDate(slot).BuildCreateRequestDTO())
		other := builder.NewAppointmentBuilder().
			WithDoctorName("Dr. Helena Lima").
			WithDate(slot).
			BuildCreateRequestDTO()

		created := s.createAppointment(other)
		require.Equal(t, "Dr. Helena Lima", created.DoctorName)
	})

	s.Run("Error case: malformed body fields are rejected", func() {
		t := s.T()

		reqBody := map[string]any{
			"patientName":     "Ab",
			"doctorName":      "Dr. Souza",
			"specialty":       "Cardiology",
			"appointmentDate": futureSlot(72),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, reqBody)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "patientName")
	})
}

// =============================================================================
// TestListAppointments - Listing and ordering
// =============================================================================

func (s *AppointmentSuite) TestListAppointments() {
	s.Run("Normal case: appointments are ordered by date ascending", func() {
		t := s.T()

		later := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(96)).BuildCreateRequestDTO())
		sooner := s.createAppointment(builder.NewAppointmentBuilder().
			WithDoctorName("Dr. Helena Lima").
			WithDate(futureSlot(48)).
			BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []response.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Len(t, list, 2)
		require.Equal(t, sooner.ID, list[0].ID, "Earlier slot should come first")
		require.Equal(t, later.ID, list[1].ID)
	})

	s.Run("Normal case: empty store returns an empty list", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []response.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &list)
		require.Empty(t, list)
	})
}

// =============================================================================
// TestUpdateAppointment - Partial update semantics
// =============================================================================

func (s *AppointmentSuite) TestUpdateAppointment() {
	s.Run("Normal case: only the provided fields change", func() {
		t := s.T()
		slot := futureSlot(72)

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(slot).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d", appointmentsURL, created.ID),
			map[string]any{"specialty": "Dermatology"})
		require.Equal(t, http.StatusOK, w.Code, "Partial update should succeed: %s", w.Body.String())

		var updated response.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &updated)
		require.Equal(t, "Dermatology", updated.Specialty)
		require.Equal(t, created.PatientName, updated.PatientName)
		require.Equal(t, created.DoctorName, updated.DoctorName)
		require.True(t, updated.Date.Equal(slot), "Date should be untouched")
		require.Equal(t, "Scheduled", updated.Status)
	})

	s.Run("Error case: moving to an occupied slot is rejected", func() {
		t := s.T()
		occupied := futureSlot(48)

		s.createAppointment(builder.NewAppointmentBuilder().WithDate(occupied).BuildCreateRequestDTO())
		target := s.createAppointment(builder.NewAppointmentBuilder().
			WithPatientName("Bruno Alves").
			WithDate(futureSlot(96)).
			BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d", appointmentsURL, target.ID),
			map[string]any{"appointmentDate": occupied})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Doctor already has a scheduled appointment at this time")
	})

	s.Run("Error case: status cannot be changed through the generic update", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(72)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d", appointmentsURL, created.ID),
			map[string]any{"status": "Completed"})
		require.Equal(t, http.StatusBadRequest, w.Code, "Unknown fields should be rejected")
	})

	s.Run("Error case: updating a missing appointment returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			appointmentsURL+"/424242",
			map[string]any{"specialty": "Dermatology"})
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Appointment not found")
	})
}

// =============================================================================
// TestCancelAppointment - Cancellation window and transitions
// =============================================================================

func (s *AppointmentSuite) TestCancelAppointment() {
	s.Run("Normal case: cancelling well in advance succeeds", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(72)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d/cancel", appointmentsURL, created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, "Cancellation should succeed: %s", w.Body.String())

		var cancelled response.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &cancelled)
		require.Equal(t, "Cancelled", cancelled.Status)
	})

	s.Run("Error case: cancelling inside the 24 hour window is rejected", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(2)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d/cancel", appointmentsURL, created.ID), nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Appointments can only be cancelled up to 24 hours in advance")
	})

	s.Run("Error case: cancelling twice is rejected", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(72)).BuildCreateRequestDTO())
		url := fmt.Sprintf("%s/%d/cancel", appointmentsURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Appointment is already cancelled")
	})
}

// =============================================================================
// TestCompleteAppointment - Completion transitions
// =============================================================================

func (s *AppointmentSuite) TestCompleteAppointment() {
	s.Run("Normal case: a scheduled appointment can be completed", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(72)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d/complete", appointmentsURL, created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code, "Completion should succeed: %s", w.Body.String())

		var completed response.AppointmentResponse
		httptest.DecodeResponseBody(t, w.Body, &completed)
		require.Equal(t, "Completed", completed.Status)
	})

	s.Run("Error case: a cancelled appointment cannot be completed", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(72)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d/cancel", appointmentsURL, created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf("%s/%d/complete", appointmentsURL, created.ID), nil)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Appointment is already cancelled")
	})
}

// =============================================================================
// TestDeleteAppointment - Hard delete
// =============================================================================

func (s *AppointmentSuite) TestDeleteAppointment() {
	s.Run("Normal case: a deleted appointment is gone for good", func() {
		t := s.T()

		created := s.createAppointment(builder.NewAppointmentBuilder().WithDate(futureSlot(72)).BuildCreateRequestDTO())
		url := fmt.Sprintf("%s/%d", appointmentsURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Appointment not found")
	})

	s.Run("Error case: deleting a missing appointment returns 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, appointmentsURL+"/424242", nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Appointment not found")
	})
}

// =============================================================================
// TestHealthCheck
// =============================================================================

func (s *AppointmentSuite) TestHealthCheck() {
	t := s.T()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	httptest.DecodeResponseBody(t, w.Body, &body)
	require.Equal(t, "ok", body["status"])
}
