package repository

import (
	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, includeHidden bool) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindBookedSlot(db *gorm.DB, doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error)
	FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date string) ([]string, error)
	// UpdateStatusIf transitions status only when the current status matches
	// from. Returns affected rows: 1 = transitioned, 0 = no match.
	UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Hide(db *gorm.DB, id uuid.UUID) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
