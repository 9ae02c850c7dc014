package repository

import (
	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Notification, error)
	CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error)
	// MarkRead marks the given notifications read, restricted to rows owned
	// by userID. Returns the number of rows updated.
	MarkRead(db *gorm.DB, userID uuid.UUID, ids []int64) (int64, error)
	MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error)
}
