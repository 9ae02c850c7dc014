package repository

import (
	"errors"
	"time"

	"bsdoc-server/internal/domain/entity"
	domainRepo "bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorVerificationRepository struct{}

func NewDoctorVerificationRepository() domainRepo.DoctorVerificationRepository {
	return &doctorVerificationRepository{}
}

func (r *doctorVerificationRepository) Create(db *gorm.DB, verification *entity.DoctorVerification) error {
	return db.Create(verification).Error
}

func (r *doctorVerificationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error) {
	var verification entity.DoctorVerification
	err := db.Where("id = ?", id).First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &verification, nil
}

func (r *doctorVerificationRepository) FindPendingByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorVerification, error) {
	var verification entity.DoctorVerification
	err := db.Where("user_id = ? AND status = ?", userID, entity.VerificationStatusPending).
		First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &verification, nil
}

func (r *doctorVerificationRepository) FindByStatus(db *gorm.DB, status entity.VerificationStatus) ([]entity.DoctorVerification, error) {
	var verifications []entity.DoctorVerification
	err := db.Where("status = ?", status).Order("submitted_at ASC").Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	return verifications, nil
}

// MarkDecided atomically transitions a verification out of pending.
// The status guard in the WHERE clause prevents a second decision from
// silently overwriting the first.
func (r *doctorVerificationRepository) MarkDecided(db *gorm.DB, id uuid.UUID, status entity.VerificationStatus, verifierID uuid.UUID, decidedAt time.Time) (int64, error) {
	result := db.Model(&entity.DoctorVerification{}).
		Where("id = ? AND status = ?", id, entity.VerificationStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"verifier_id": verifierID,
			"verified_at": decidedAt,
		})
	return result.RowsAffected, result.Error
}
