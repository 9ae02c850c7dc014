package converter

import (
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
)

// VerificationToResponse converts a DoctorVerification entity to its DTO
func VerificationToResponse(verification *entity.DoctorVerification) *dto.VerificationResponse {
	if verification == nil {
		return nil
	}

	return &dto.VerificationResponse{
		ID:          verification.ID,
		UserID:      verification.UserID,
		PRCIDURL:    verification.PRCIDURL,
		Status:      string(verification.Status),
		SubmittedAt: verification.SubmittedAt,
		VerifiedAt:  verification.VerifiedAt,
		VerifierID:  verification.VerifierID,
	}
}

// VerificationsToResponses converts a slice of DoctorVerification entities
func VerificationsToResponses(verifications []entity.DoctorVerification) []dto.VerificationResponse {
	responses := make([]dto.VerificationResponse, len(verifications))
	for i, verification := range verifications {
		resp := VerificationToResponse(&verification)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
