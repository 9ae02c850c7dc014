package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a patient booking against a doctor's slot.
// A partial unique index on (doctor_id, appointment_date, appointment_time)
// WHERE status = 'booked' enforces one active booking per slot; the
// application-level pre-check is advisory only.
type Appointment struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate   string            `gorm:"type:varchar(10);not null;index" json:"appointment_date"`
	AppointmentTime   string            `gorm:"type:varchar(8);not null" json:"appointment_time"`
	Status            AppointmentStatus `gorm:"type:varchar(20);not null;default:'booked';index" json:"status"`
	IsHiddenByPatient bool              `gorm:"not null;default:false" json:"is_hidden_by_patient"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsBooked checks if the appointment is active
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
