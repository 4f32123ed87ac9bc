package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// DoctorHandler serves doctor application and moderation endpoints.
type DoctorHandler struct {
	doctors *service.DoctorService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(doctors *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

type doctorProfileRequest struct {
	Prefix             string  `json:"prefix" validate:"max=10"`
	FullName           string  `json:"fullName" validate:"required,max=100"`
	Email              string  `json:"email" validate:"required,email"`
	PhoneNumber        string  `json:"phoneNumber" validate:"required,max=30"`
	Address            string  `json:"address" validate:"required,max=255"`
	Specialization     string  `json:"specialization" validate:"required,max=100"`
	Experience         string  `json:"experience" validate:"required,max=100"`
	FeePerConsultation float64 `json:"feePerConsultation" validate:"gte=0"`
	FromTime           string  `json:"fromTime" validate:"required,datetime=15:04"`
	ToTime             string  `json:"toTime" validate:"required,datetime=15:04"`
}

func (r doctorProfileRequest) profile() domain.DoctorProfile {
	return domain.DoctorProfile{
		Prefix:             r.Prefix,
		FullName:           r.FullName,
		Email:              r.Email,
		PhoneNumber:        r.PhoneNumber,
		Address:            r.Address,
		Specialization:     r.Specialization,
		Experience:         r.Experience,
		FeePerConsultation: r.FeePerConsultation,
		FromTime:           r.FromTime,
		ToTime:             r.ToTime,
	}
}

type changeDoctorStatusRequest struct {
	DoctorID string              `json:"doctorId" validate:"required"`
	Status   domain.DoctorStatus `json:"status" validate:"required,oneof=approved blocked"`
	UserID   string              `json:"userId" validate:"required"`
}

// Apply handles POST /doctors/apply-doctor.
func (h *DoctorHandler) Apply(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req doctorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doctor, err := h.doctors.Apply(c.Request().Context(), user.ID, req.profile())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, "Doctor account applied successfully", doctor)
}

// List handles GET /doctors.
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.doctors.List(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Doctors fetched successfully.", doctors)
}

// ListApproved handles GET /doctors/approved.
func (h *DoctorHandler) ListApproved(c echo.Context) error {
	doctors, err := h.doctors.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Approved doctors fetched successfully.", doctors)
}

// Get handles GET /doctors/:id.
func (h *DoctorHandler) Get(c echo.Context) error {
	doctor, err := h.doctors.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Doctor fetched successfully.", doctor)
}

// GetByUser handles GET /doctors/user/:userId.
func (h *DoctorHandler) GetByUser(c echo.Context) error {
	doctor, err := h.doctors.GetByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Doctor fetched successfully.", doctor)
}

// UpdateProfile handles PUT /doctors/profile for the caller's own record.
func (h *DoctorHandler) UpdateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req doctorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doctor, err := h.doctors.UpdateProfile(c.Request().Context(), user.ID, req.profile())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Doctor profile updated successfully", doctor)
}

// ChangeStatus handles POST /doctors/change-doctor-status. The owner id is
// taken from the body as sent by the admin console.
func (h *DoctorHandler) ChangeStatus(c echo.Context) error {
	var req changeDoctorStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	doctors, err := h.doctors.ChangeStatus(c.Request().Context(), req.DoctorID, req.Status, req.UserID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Doctor status changed successfully", doctors)
}
