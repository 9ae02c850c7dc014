package usecase

import (
	"context"
	"errors"

	"bsdoc-server/internal/converter"
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNothingToMark = errors.New("either ids or all must be provided")

type NotificationUsecase interface {
	GetMyNotifications(ctx context.Context, userID uuid.UUID) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, req *dto.MarkReadRequest) (*dto.MarkReadResponse, error)
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) GetMyNotifications(ctx context.Context, userID uuid.UUID) (*dto.NotificationListResponse, error) {
	notifications, err := u.notificationRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list notifications for user %s: %+v", userID, err)
		return nil, err
	}

	unread, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		UnreadCount:   unread,
		Total:         len(notifications),
	}, nil
}

// MarkRead marks either the listed notifications or all of the user's
// notifications as read. Updates are owner-scoped in the repository, so
// ids belonging to other users silently count as zero.
func (u *notificationUsecase) MarkRead(ctx context.Context, userID uuid.UUID, req *dto.MarkReadRequest) (*dto.MarkReadResponse, error) {
	if !req.All && len(req.IDs) == 0 {
		return nil, ErrNothingToMark
	}

	var (
		updated int64
		err     error
	)
	if req.All {
		updated, err = u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), userID)
	} else {
		updated, err = u.notificationRepo.MarkRead(u.db.WithContext(ctx), userID, req.IDs)
	}
	if err != nil {
		u.log.Warnf("Failed to mark notifications read for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.MarkReadResponse{Updated: updated}, nil
}
