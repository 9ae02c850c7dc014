package usecase

import (
	"context"
	"testing"

	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	db := newTestDB(t)
	u := NewNotificationUsecase(db, newTestLogger(), repository.NewNotificationRepository())
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com", entity.RoleIDUser)
	other := createTestUser(t, db, "other@example.com", entity.RoleIDUser)

	rows := []entity.Notification{
		{UserID: owner.ID, Type: entity.NotificationTypeAppointmentBooked, Message: "first"},
		{UserID: owner.ID, Type: entity.NotificationTypeAppointmentBooked, Message: "second"},
		{UserID: other.ID, Type: entity.NotificationTypeAppointmentBooked, Message: "not yours"},
	}
	require.NoError(t, db.Create(&rows).Error)

	t.Run("list is owner scoped with unread count", func(t *testing.T) {
		list, err := u.GetMyNotifications(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, int64(2), list.UnreadCount)
	})

	t.Run("ids or all required", func(t *testing.T) {
		_, err := u.MarkRead(ctx, owner.ID, &dto.MarkReadRequest{})
		assert.ErrorIs(t, err, ErrNothingToMark)
	})

	t.Run("foreign ids count as zero", func(t *testing.T) {
		result, err := u.MarkRead(ctx, owner.ID, &dto.MarkReadRequest{IDs: []int64{rows[2].ID}})
		require.NoError(t, err)
		assert.Zero(t, result.Updated)
	})

	t.Run("mark one by id", func(t *testing.T) {
		result, err := u.MarkRead(ctx, owner.ID, &dto.MarkReadRequest{IDs: []int64{rows[0].ID}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Updated)

		list, err := u.GetMyNotifications(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.UnreadCount)
	})

	t.Run("mark all", func(t *testing.T) {
		result, err := u.MarkRead(ctx, owner.ID, &dto.MarkReadRequest{All: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Updated)

		list, err := u.GetMyNotifications(ctx, owner.ID)
		require.NoError(t, err)
		assert.Zero(t, list.UnreadCount)

		// the other user's row is untouched
		otherList, err := u.GetMyNotifications(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), otherList.UnreadCount)
	})
}
