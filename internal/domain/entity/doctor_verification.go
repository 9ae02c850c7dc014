package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationStatus represents the status of a doctor verification request
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// DoctorVerification tracks a doctor applicant's credential review.
// UserID carries no foreign key: the rejection path deletes the user but
// the terminal verification record is kept.
type DoctorVerification struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	PRCIDURL    string             `gorm:"column:prc_id_url;type:text;not null" json:"prc_id_url"`
	Status      VerificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SubmittedAt time.Time          `gorm:"autoCreateTime" json:"submitted_at"`
	VerifiedAt  *time.Time         `json:"verified_at,omitempty"`
	VerifierID  *uuid.UUID         `gorm:"type:uuid" json:"verifier_id,omitempty"`
}

func (DoctorVerification) TableName() string {
	return "doctor_verifications"
}

func (v *DoctorVerification) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the verification is still awaiting a decision
func (v *DoctorVerification) IsPending() bool {
	return v.Status == VerificationStatusPending
}
