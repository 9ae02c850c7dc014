package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized authentication table
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID            int       `gorm:"not null;index" json:"role_id"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"type:text;not null" json:"-"`
	FirstName         string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName          string    `gorm:"type:varchar(255);not null" json:"last_name"`
	ProfileImageURL   string    `gorm:"type:text" json:"profile_image_url,omitempty"`
	IsProfileComplete bool      `gorm:"not null;default:false" json:"is_profile_complete"`
	IsActive          *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role          Role           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName returns the display name used in notifications
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.RoleID == RoleIDAdmin
}

// IsDoctor checks if the user holds the doctor role
func (u *User) IsDoctor() bool {
	return u.RoleID == RoleIDDoctor
}
