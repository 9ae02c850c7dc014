package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// SubmitVerificationRequest carries the form fields of a doctor
// registration. The proof document travels separately as a multipart file.
type SubmitVerificationRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Response DTOs

type VerificationResponse struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	PRCIDURL    string        `json:"prc_id_url"`
	Status      string        `json:"status"`
	SubmittedAt time.Time     `json:"submitted_at"`
	VerifiedAt  *time.Time    `json:"verified_at,omitempty"`
	VerifierID  *uuid.UUID    `json:"verifier_id,omitempty"`
	User        *UserResponse `json:"user,omitempty"`
}

type VerificationListResponse struct {
	Verifications []VerificationResponse `json:"verifications"`
	Total         int                    `json:"total"`
}
