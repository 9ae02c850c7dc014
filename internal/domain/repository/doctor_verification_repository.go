package repository

import (
	"time"

	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorVerificationRepository interface {
	Create(db *gorm.DB, verification *entity.DoctorVerification) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error)
	FindPendingByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorVerification, error)
	FindByStatus(db *gorm.DB, status entity.VerificationStatus) ([]entity.DoctorVerification, error)
	// MarkDecided transitions a verification out of pending. Returns affected
	// rows: 1 = transitioned, 0 = the record was not pending (guards against
	// double decisions).
	MarkDecided(db *gorm.DB, id uuid.UUID, status entity.VerificationStatus, verifierID uuid.UUID, decidedAt time.Time) (int64, error)
}
