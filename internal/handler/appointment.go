package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/authz"
	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// AppointmentHandler serves booking and appointment endpoints.
type AppointmentHandler struct {
	appointments *service.AppointmentService
	gate         *authz.Gate
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *service.AppointmentService, gate *authz.Gate) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, gate: gate}
}

type bookAppointmentRequest struct {
	UserID        string  `json:"userId"`
	DoctorID      string  `json:"doctorId" validate:"required"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string  `json:"time" validate:"required,datetime=15:04"`
	MedicalReport *string `json:"medicalReport" validate:"omitempty,max=2048"`
}

type updateAppointmentRequest struct {
	Status domain.AppointmentStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// Book handles POST /users/book-appointment. The patient defaults to the
// caller; booking for someone else needs admin rights.
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, _ := CurrentUser(c)
	if req.UserID == "" && user != nil {
		req.UserID = user.ID
	}
	if err := h.gate.Authorize(c.Request().Context(), authz.SubjectOf(user), authz.ActionBook, authz.ResourceAppointment, req.UserID); err != nil {
		return err
	}

	appt, err := h.appointments.Book(c.Request().Context(), service.BookingRequest{
		PatientID:     req.UserID,
		DoctorID:      req.DoctorID,
		Date:          req.Date,
		Time:          req.Time,
		MedicalReport: req.MedicalReport,
	})
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, "Appointment booked successfully.", appt)
}

// ListForUser handles GET /users/user-appointments/:id.
func (h *AppointmentHandler) ListForUser(c echo.Context) error {
	appts, err := h.appointments.ListForUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Appointments fetched successfully.", appts)
}

// ListAll handles GET /users/all-appointments.
func (h *AppointmentHandler) ListAll(c echo.Context) error {
	appts, err := h.appointments.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "All appointments fetched successfully.", appts)
}

// ListForDoctor handles GET /doctors/appointments for the caller's doctor
// record.
func (h *AppointmentHandler) ListForDoctor(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	appts, err := h.appointments.ListForDoctorOwner(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Appointments fetched successfully.", appts)
}

// UpdateStatus handles PUT /users/update-appointment/:id.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	var req updateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	appt, err := h.appointments.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Appointment status updated successfully.", appt)
}
