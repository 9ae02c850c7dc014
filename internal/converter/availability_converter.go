package converter

import (
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
)

// AvailabilityToResponse converts an Availability entity to its DTO
func AvailabilityToResponse(availability *entity.Availability) *dto.AvailabilityResponse {
	if availability == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:        availability.ID,
		DoctorID:  availability.DoctorID,
		DayOfWeek: availability.DayOfWeek,
		StartTime: availability.StartTime,
		EndTime:   availability.EndTime,
		CreatedAt: availability.CreatedAt,
		UpdatedAt: availability.UpdatedAt,
	}
}

// AvailabilitiesToResponses converts a slice of Availability entities
func AvailabilitiesToResponses(availabilities []entity.Availability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(availabilities))
	for i, availability := range availabilities {
		resp := AvailabilityToResponse(&availability)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
