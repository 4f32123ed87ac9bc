package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "pending"
	AppointmentStatusApproved AppointmentStatus = "approved"
	AppointmentStatusRejected AppointmentStatus = "rejected"
)

// PatientInfo is the patient snapshot stored with an appointment.
type PatientInfo struct {
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email" bson:"email"`
	PhoneNumber string `json:"phoneNumber" bson:"phoneNumber"`
}

// DoctorInfo is the doctor snapshot stored with an appointment.
type DoctorInfo struct {
	UserID         string `json:"userId" bson:"userId"`
	Prefix         string `json:"prefix" bson:"prefix"`
	FullName       string `json:"fullName" bson:"fullName"`
	PhoneNumber    string `json:"phoneNumber" bson:"phoneNumber"`
	Specialization string `json:"specialization" bson:"specialization"`
}

// Appointment is a booking of a doctor by a patient.
type Appointment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	DoctorID      string            `json:"doctorId"`
	UserInfo      PatientInfo       `json:"userInfo"`
	DoctorInfo    DoctorInfo        `json:"doctorInfo"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	MedicalReport *string           `json:"medicalReport,omitempty"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// WithStatus returns a copy of the appointment with the given status.
func (a Appointment) WithStatus(status AppointmentStatus) Appointment {
	a.Status = status
	a.UpdatedAt = time.Now()
	return a
}
