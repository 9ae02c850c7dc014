package repository

import (
	"errors"

	"bsdoc-server/internal/domain/entity"
	domainRepo "bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(db *gorm.DB, availability *entity.Availability) error {
	return db.Create(availability).Error
}

func (r *availabilityRepository) FindByID(db *gorm.DB, id int) (*entity.Availability, error) {
	var availability entity.Availability
	err := db.Where("id = ?", id).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Availability, error) {
	var availabilities []entity.Availability
	err := db.Where("doctor_id = ?", doctorID).Order("day_of_week ASC").Find(&availabilities).Error
	if err != nil {
		return nil, err
	}
	return availabilities, nil
}

func (r *availabilityRepository) FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.Availability, error) {
	var availability entity.Availability
	err := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepository) Update(db *gorm.DB, availability *entity.Availability) error {
	return db.Omit("Doctor").Save(availability).Error
}

func (r *availabilityRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Availability{})
	return result.RowsAffected, result.Error
}
