package converter

import (
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
)

// DoctorToResponse converts a DoctorProfile entity (with preloaded User)
// to its DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                profile.UserID,
		Email:             profile.User.Email,
		FirstName:         profile.User.FirstName,
		LastName:          profile.User.LastName,
		Specialization:    profile.Specialization,
		Bio:               profile.Bio,
		ClinicName:        profile.ClinicName,
		ClinicAddress:     profile.ClinicAddress,
		LicenseNumber:     profile.LicenseNumber,
		YearsOfExperience: profile.YearsOfExperience,
		IsProfileComplete: profile.IsProfileComplete,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
