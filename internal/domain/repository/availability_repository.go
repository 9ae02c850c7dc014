package repository

import (
	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	Create(db *gorm.DB, availability *entity.Availability) error
	FindByID(db *gorm.DB, id int) (*entity.Availability, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Availability, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) (*entity.Availability, error)
	Update(db *gorm.DB, availability *entity.Availability) error
	Delete(db *gorm.DB, id int) (int64, error)
}
