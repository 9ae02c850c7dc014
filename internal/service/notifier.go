package service

import (
	"context"

	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationInput is the template applied to every recipient of a
// fan-out.
type NotificationInput struct {
	Type     string
	Message  string
	LinkURL  string
	Metadata entity.JSON
}

// Notifier inserts notification rows on behalf of workflows. It runs with
// the service's own DB handle rather than any requester-scoped one, since
// the caller is never the recipient. All methods are best-effort from the
// caller's point of view: failures are logged and must not fail the
// triggering operation.
type Notifier struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotifier(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) *Notifier {
	return &Notifier{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

// Notify inserts a single notification row for one recipient.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, input NotificationInput) error {
	notification := &entity.Notification{
		UserID:   userID,
		Type:     input.Type,
		Message:  input.Message,
		LinkURL:  input.LinkURL,
		Metadata: input.Metadata,
	}

	if err := n.notificationRepo.Create(n.db.WithContext(ctx), notification); err != nil {
		n.log.Warnf("Failed to insert %s notification for user %s: %+v", input.Type, userID, err)
		return err
	}

	return nil
}

// FanOut inserts one row per recipient. Partial failure is tolerated: each
// failed insert is logged and skipped. Returns the number of rows created.
func (n *Notifier) FanOut(ctx context.Context, userIDs []uuid.UUID, input NotificationInput) int {
	created := 0
	for _, userID := range userIDs {
		if err := n.Notify(ctx, userID, input); err != nil {
			continue
		}
		created++
	}

	if created < len(userIDs) {
		n.log.Warnf("Notification fan-out incomplete: %d/%d rows created for type %s", created, len(userIDs), input.Type)
	}

	return created
}
