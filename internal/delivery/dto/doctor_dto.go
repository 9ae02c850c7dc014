package dto

import "github.com/google/uuid"

// Request DTOs

type UpdateDoctorProfileRequest struct {
	Specialization    string `json:"specialization,omitempty" validate:"omitempty,max=100"`
	Bio               string `json:"bio,omitempty"`
	ClinicName        string `json:"clinic_name,omitempty" validate:"omitempty,max=255"`
	ClinicAddress     string `json:"clinic_address,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty" validate:"omitempty,max=50"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty" validate:"omitempty,gte=0"`
}

// Response DTOs

type DoctorResponse struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Specialization    string    `json:"specialization,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	ClinicName        string    `json:"clinic_name,omitempty"`
	ClinicAddress     string    `json:"clinic_address,omitempty"`
	LicenseNumber     string    `json:"license_number,omitempty"`
	YearsOfExperience int       `json:"years_of_experience"`
	IsProfileComplete bool      `json:"is_profile_complete"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
