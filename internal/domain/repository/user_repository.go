package repository

import (
	"bsdoc-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByRoleID(db *gorm.DB, roleID int) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateRoleID(db *gorm.DB, id uuid.UUID, roleID int) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
