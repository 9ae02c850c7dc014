package entity

import "github.com/google/uuid"

// DoctorProfile represents doctor-specific profile data.
// The row is created inside the verification approval transaction and
// completed by the doctor afterwards.
type DoctorProfile struct {
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization    string    `gorm:"type:varchar(100);index" json:"specialization,omitempty"`
	Bio               string    `gorm:"type:text" json:"bio,omitempty"`
	ClinicName        string    `gorm:"type:varchar(255)" json:"clinic_name,omitempty"`
	ClinicAddress     string    `gorm:"type:text" json:"clinic_address,omitempty"`
	LicenseNumber     string    `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	YearsOfExperience int       `gorm:"not null;default:0" json:"years_of_experience"`
	IsProfileComplete bool      `gorm:"not null;default:false" json:"is_profile_complete"`

	// Relationships
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availabilities []Availability `gorm:"foreignKey:DoctorID" json:"availabilities,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
