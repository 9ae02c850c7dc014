package entity

import (
	"time"

	"github.com/google/uuid"
)

// Availability represents a doctor's recurring working window for one
// weekday. Times are stored as "HH:MM:SS" strings. At most one window per
// (doctor, weekday) is allowed.
type Availability struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_availability_doctor_day" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_availability_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(8);not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Availability) TableName() string {
	return "availabilities"
}
