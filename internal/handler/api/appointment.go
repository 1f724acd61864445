package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clinic-appointments/internal/domain/appointment"
	reqdto "clinic-appointments/internal/handler/dto/request"
	resdto "clinic-appointments/internal/handler/dto/response"
	"clinic-appointments/internal/handler/httperr"
	"clinic-appointments/internal/usecase/commands"
	"clinic-appointments/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AppointmentHandler struct {
	commands commands.AppointmentCommands
	queries  queries.AppointmentQueries
}

func NewAppointmentHandler(commands commands.AppointmentCommands, queries queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{
		commands: commands,
		queries:  queries,
	}
}

// @Summary List appointments
// @Description List all appointments ordered by appointment date ascending
// @Tags appointments
// @Produce json
// @Success 200 {array} resdto.AppointmentResponse
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary Get appointment
// @Description Get a single appointment by id
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Create appointment
// @Description Book a new appointment; the slot must be free and in the future
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body reqdto.CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, bindingMessage(err))
		return
	}

	view, err := h.commands.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAppointmentView(view))
}

// @Summary Update appointment
// @Description Partially update an appointment; omitted fields are left unchanged
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentRequest true "Fields to update"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, bindingMessage(err))
		return
	}

	view, err := h.commands.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Cancel appointment
// @Description Cancel a scheduled appointment at least 24 hours in advance
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/cancel [patch]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.commands.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Complete appointment
// @Description Mark a scheduled appointment as completed
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id}/complete [patch]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.commands.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Delete appointment
// @Description Permanently delete an appointment
// @Tags appointments
// @Param id path int true "Appointment ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errors.New("non-positive appointment id")
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid appointment ID")
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy to HTTP statuses. Business-rule
// rejections are client faults; anything unrecognized stays a generic 500
// so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrAppointmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Appointment not found")
	case errors.Is(err, appointment.ErrPastDate),
		errors.Is(err, appointment.ErrSlotConflict),
		errors.Is(err, appointment.ErrAlreadyCancelled),
		errors.Is(err, appointment.ErrAlreadyCompleted),
		errors.Is(err, appointment.ErrTooLateToCancel),
		errors.Is(err, appointment.ErrNameTooShort),
		errors.Is(err, appointment.ErrEmptySpecialty),
		errors.Is(err, appointment.ErrMissingDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, capitalize(err.Error()))
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

// bindingMessage joins per-field validation failures into one message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, ", ")
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must have at least " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "PatientName":
		return "patientName"
	case "DoctorName":
		return "doctorName"
	case "Specialty":
		return "specialty"
	case "AppointmentDate":
		return "appointmentDate"
	default:
		return structField
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
