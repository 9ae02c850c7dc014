package repository

import (
	"errors"

	"bsdoc-server/internal/domain/entity"
	domainRepo "bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, includeHidden bool) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Doctor.User").Where("patient_id = ?", patientID)
	if !includeHidden {
		query = query.Where("is_hidden_by_patient = ?", false)
	}
	err := query.
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBookedSlot(db *gorm.DB, doctorID uuid.UUID, date, timeOfDay string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where(
		"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
		doctorID, date, timeOfDay, entity.AppointmentStatusBooked,
	).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, date string) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?", doctorID, date, entity.AppointmentStatusBooked).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// UpdateStatusIf atomically transitions status only from the expected
// current value. Returns affected rows: 1 = success, 0 = state mismatch.
func (r *appointmentRepository) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Hide(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("is_hidden_by_patient", true).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Patient").Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
