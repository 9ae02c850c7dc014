package usecase

import (
	"context"
	"testing"

	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/repository"
	"bsdoc-server/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testAppointmentEnv struct {
	db      *gorm.DB
	doctor  *entity.User
	patient *entity.User
}

func newAppointmentUsecase(t *testing.T) (AppointmentUsecase, *testAppointmentEnv) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	env := &testAppointmentEnv{
		db:      db,
		doctor:  createTestDoctor(t, db, "doc@example.com"),
		patient: createTestUser(t, db, "patient@example.com", entity.RoleIDUser),
	}

	u := NewAppointmentUsecase(
		db,
		log,
		repository.NewAppointmentRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewUserRepository(),
		service.NewNotifier(db, log, repository.NewNotificationRepository()),
		service.NewAuditService(db, log, repository.NewAuditLogRepository()),
	)
	return u, env
}

func bookSlot(t *testing.T, u AppointmentUsecase, env *testAppointmentEnv, timeOfDay string) *dto.AppointmentResponse {
	t.Helper()

	resp, err := u.CreateAppointment(context.Background(), env.patient.ID, &dto.CreateAppointmentRequest{
		DoctorID:        env.doctor.ID,
		AppointmentDate: "2026-09-07",
		AppointmentTime: timeOfDay,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateAppointment(t *testing.T) {
	u, env := newAppointmentUsecase(t)
	ctx := context.Background()

	resp := bookSlot(t, u, env, "09:00:00")
	assert.Equal(t, string(entity.AppointmentStatusBooked), resp.Status)

	t.Run("doctor is notified with patient name", func(t *testing.T) {
		var notification entity.Notification
		require.NoError(t, env.db.Where("user_id = ? AND type = ?", env.doctor.ID, entity.NotificationTypeAppointmentBooked).
			First(&notification).Error)
		assert.Contains(t, notification.Message, env.patient.FullName())
	})

	t.Run("same slot cannot be double booked", func(t *testing.T) {
		_, err := u.CreateAppointment(ctx, env.patient.ID, &dto.CreateAppointmentRequest{
			DoctorID:        env.doctor.ID,
			AppointmentDate: "2026-09-07",
			AppointmentTime: "09:00:00",
		})
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("cancelled slot can be rebooked", func(t *testing.T) {
		require.NoError(t, u.CancelAppointment(ctx, env.patient.ID, resp.ID))
		rebooked := bookSlot(t, u, env, "09:00:00")
		assert.NotEqual(t, resp.ID, rebooked.ID)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		_, err := u.CreateAppointment(ctx, env.patient.ID, &dto.CreateAppointmentRequest{
			DoctorID:        uuid.New(),
			AppointmentDate: "2026-09-07",
			AppointmentTime: "10:00:00",
		})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := u.CreateAppointment(ctx, env.patient.ID, &dto.CreateAppointmentRequest{
			DoctorID:        env.doctor.ID,
			AppointmentDate: "07/09/2026",
			AppointmentTime: "10:00:00",
		})
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})
}

func TestAppointmentTransitions(t *testing.T) {
	u, env := newAppointmentUsecase(t)
	ctx := context.Background()
	stranger := createTestUser(t, env.db, "stranger@example.com", entity.RoleIDUser)

	t.Run("patient cancels own booking", func(t *testing.T) {
		resp := bookSlot(t, u, env, "09:00:00")
		require.NoError(t, u.CancelAppointment(ctx, env.patient.ID, resp.ID))
		assert.ErrorIs(t, u.CancelAppointment(ctx, env.patient.ID, resp.ID), ErrInvalidTransition)
	})

	t.Run("doctor cancels a booking", func(t *testing.T) {
		resp := bookSlot(t, u, env, "09:30:00")
		require.NoError(t, u.CancelAppointment(ctx, env.doctor.ID, resp.ID))
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		resp := bookSlot(t, u, env, "10:00:00")
		assert.ErrorIs(t, u.CancelAppointment(ctx, stranger.ID, resp.ID), ErrAppointmentNotOwned)
	})

	t.Run("doctor completes a booking", func(t *testing.T) {
		resp := bookSlot(t, u, env, "10:30:00")
		require.NoError(t, u.CompleteAppointment(ctx, env.doctor.ID, resp.ID))
		assert.ErrorIs(t, u.CompleteAppointment(ctx, env.doctor.ID, resp.ID), ErrInvalidTransition)
	})

	t.Run("patient cannot complete", func(t *testing.T) {
		resp := bookSlot(t, u, env, "11:00:00")
		assert.ErrorIs(t, u.CompleteAppointment(ctx, env.patient.ID, resp.ID), ErrAppointmentNotOwned)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		assert.ErrorIs(t, u.CancelAppointment(ctx, env.patient.ID, uuid.New()), ErrAppointmentNotFound)
	})
}

func TestHideAppointment(t *testing.T) {
	u, env := newAppointmentUsecase(t)
	ctx := context.Background()

	resp := bookSlot(t, u, env, "09:00:00")

	t.Run("booked appointments cannot be hidden", func(t *testing.T) {
		assert.ErrorIs(t, u.HideAppointment(ctx, env.patient.ID, resp.ID), ErrAppointmentNotCancelled)
	})

	require.NoError(t, u.CancelAppointment(ctx, env.patient.ID, resp.ID))

	t.Run("only the booking patient can hide", func(t *testing.T) {
		assert.ErrorIs(t, u.HideAppointment(ctx, env.doctor.ID, resp.ID), ErrAppointmentNotOwned)
	})

	require.NoError(t, u.HideAppointment(ctx, env.patient.ID, resp.ID))

	t.Run("hidden row leaves the patient list", func(t *testing.T) {
		list, err := u.GetMyAppointments(ctx, env.patient.ID)
		require.NoError(t, err)
		assert.Zero(t, list.Total)
	})

	t.Run("doctor still sees the row", func(t *testing.T) {
		list, err := u.GetDoctorAppointments(ctx, env.doctor.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, list.Total)
	})
}

func TestAdminAppointmentOperations(t *testing.T) {
	u, env := newAppointmentUsecase(t)
	ctx := context.Background()

	resp := bookSlot(t, u, env, "09:00:00")

	t.Run("patch date time and status", func(t *testing.T) {
		updated, err := u.UpdateAppointment(ctx, resp.ID, &dto.UpdateAppointmentRequest{
			AppointmentDate: "2026-09-08",
			AppointmentTime: "14:00:00",
			Status:          string(entity.AppointmentStatusCompleted),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-09-08", updated.AppointmentDate)
		assert.Equal(t, "14:00:00", updated.AppointmentTime)
		assert.Equal(t, string(entity.AppointmentStatusCompleted), updated.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := u.UpdateAppointment(ctx, resp.ID, &dto.UpdateAppointmentRequest{Status: "archived"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, u.DeleteAppointment(ctx, resp.ID))
		assert.ErrorIs(t, u.DeleteAppointment(ctx, resp.ID), ErrAppointmentNotFound)
	})
}
