package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification types raised by workflows
const (
	NotificationTypeVerificationSubmitted = "VERIFICATION_SUBMITTED"
	NotificationTypeProfileCompletePrompt = "PROFILE_COMPLETE_PROMPT"
	NotificationTypeAppointmentBooked     = "APPOINTMENT_BOOKED"
)

// Notification is a persistent alert owned by its recipient. Rows are only
// ever mutated by marking is_read, never deleted by the application.
type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	LinkURL   string    `gorm:"type:text" json:"link_url,omitempty"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
