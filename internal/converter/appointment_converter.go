package converter

import (
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                appointment.ID,
		DoctorID:          appointment.DoctorID,
		PatientID:         appointment.PatientID,
		AppointmentDate:   appointment.AppointmentDate,
		AppointmentTime:   appointment.AppointmentTime,
		Status:            string(appointment.Status),
		IsHiddenByPatient: appointment.IsHiddenByPatient,
		CreatedAt:         appointment.CreatedAt,
		UpdatedAt:         appointment.UpdatedAt,
	}

	// Include party names when the relations were preloaded
	if appointment.Doctor.UserID != uuid.Nil && appointment.Doctor.User.ID != uuid.Nil {
		response.DoctorName = appointment.Doctor.User.FullName()
	}
	if appointment.Patient.ID != uuid.Nil {
		response.PatientName = appointment.Patient.FullName()
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
