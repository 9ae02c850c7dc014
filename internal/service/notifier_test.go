package service

import (
	"context"
	"io"
	"testing"

	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newNotifier(t *testing.T) (*Notifier, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.Notification{}))

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewNotifier(db, log, repository.NewNotificationRepository()), db
}

func TestNotify(t *testing.T) {
	notifier, db := newNotifier(t)
	recipient := uuid.New()

	err := notifier.Notify(context.Background(), recipient, NotificationInput{
		Type:     entity.NotificationTypeAppointmentBooked,
		Message:  "Anna Cruz booked an appointment on 2026-09-07 at 09:00:00.",
		LinkURL:  "/doctor/appointments",
		Metadata: entity.JSON{"appointment_id": uuid.New().String()},
	})
	require.NoError(t, err)

	var row entity.Notification
	require.NoError(t, db.First(&row, "user_id = ?", recipient).Error)
	assert.Equal(t, entity.NotificationTypeAppointmentBooked, row.Type)
	assert.False(t, row.IsRead)
	assert.Contains(t, row.Metadata, "appointment_id")
}

func TestFanOut(t *testing.T) {
	notifier, db := newNotifier(t)

	recipients := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	created := notifier.FanOut(context.Background(), recipients, NotificationInput{
		Type:    entity.NotificationTypeVerificationSubmitted,
		Message: "Maria Santos submitted a doctor verification request.",
		LinkURL: "/admin/doctor-verifications",
	})
	assert.Equal(t, len(recipients), created)

	var count int64
	require.NoError(t, db.Model(&entity.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(len(recipients)), count)

	t.Run("no recipients is a no-op", func(t *testing.T) {
		assert.Zero(t, notifier.FanOut(context.Background(), nil, NotificationInput{
			Type:    entity.NotificationTypeVerificationSubmitted,
			Message: "nobody listens",
		}))
	})
}
