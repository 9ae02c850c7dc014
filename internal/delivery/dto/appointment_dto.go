package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"`
	AppointmentTime string    `json:"appointment_time" validate:"required"`
}

// UpdateAppointmentRequest is the admin-scoped generic patch: any of the
// fields may be set, nothing beyond existence is enforced.
type UpdateAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date,omitempty"`
	AppointmentTime string `json:"appointment_time,omitempty"`
	Status          string `json:"status,omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                uuid.UUID `json:"id"`
	DoctorID          uuid.UUID `json:"doctor_id"`
	PatientID         uuid.UUID `json:"patient_id"`
	AppointmentDate   string    `json:"appointment_date"`
	AppointmentTime   string    `json:"appointment_time"`
	Status            string    `json:"status"`
	IsHiddenByPatient bool      `json:"is_hidden_by_patient"`
	DoctorName        string    `json:"doctor_name,omitempty"`
	PatientName       string    `json:"patient_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
