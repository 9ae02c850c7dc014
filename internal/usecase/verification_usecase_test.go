package usecase

import (
	"context"
	"strings"
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

type testVerificationEnv struct {
	db       *gorm.DB
	store    *fakeObjectStore
	realtime *fakeRealtimePublisher
	admin    *entity.User
}

func newVerificationUsecase(t *testing.T) (VerificationUsecase, *testVerificationEnv) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	env := &testVerificationEnv{
		db:       db,
		store:    newFakeObjectStore(),
		realtime: &fakeRealtimePublisher{},
		admin:    createTestUser(t, db, "admin@example.com", entity.RoleIDAdmin),
	}

	notificationRepo := repository.NewNotificationRepository()
	u := NewVerificationUsecase(
		db,
		log,
		repository.NewUserRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewDoctorVerificationRepository(),
		env.store,
		service.NewNotifier(db, log, notificationRepo),
		env.realtime,
		service.NewAuditService(db, log, repository.NewAuditLogRepository()),
	)
	return u, env
}

func submitApplication(t *testing.T, u VerificationUsecase, email string) *dto.VerificationResponse {
	t.Helper()

	resp, err := u.Submit(context.Background(), &dto.SubmitVerificationRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     email,
		Password:  "password123",
	}, &ProofFile{
		Filename:    "prc-id.pdf",
		ContentType: "application/pdf",
		Content:     strings.NewReader("%PDF-1.4 proof"),
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitVerification(t *testing.T) {
	u, env := newVerificationUsecase(t)
	ctx := context.Background()

	secondAdmin := createTestUser(t, env.db, "admin2@example.com", entity.RoleIDAdmin)

	resp := submitApplication(t, u, "applicant@example.com")
	assert.Equal(t, string(entity.VerificationStatusPending), resp.Status)
	assert.Contains(t, resp.PRCIDURL, "https://store.test/")

	var user entity.User
	require.NoError(t, env.db.Where("email = ?", "applicant@example.com").First(&user).Error)
	assert.Equal(t, entity.RoleIDUser, user.RoleID)

	t.Run("every admin is notified", func(t *testing.T) {
		for _, adminID := range []uuid.UUID{env.admin.ID, secondAdmin.ID} {
			var count int64
			require.NoError(t, env.db.Model(&entity.Notification{}).
				Where("user_id = ? AND type = ?", adminID, entity.NotificationTypeVerificationSubmitted).
				Count(&count).Error)
			assert.Equal(t, int64(1), count)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := u.Submit(ctx, &dto.SubmitVerificationRequest{
			FirstName: "Maria",
			LastName:  "Santos",
			Email:     "applicant@example.com",
			Password:  "password123",
		}, &ProofFile{Filename: "x.pdf", ContentType: "application/pdf", Content: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("missing proof rejected", func(t *testing.T) {
		_, err := u.Submit(ctx, &dto.SubmitVerificationRequest{
			FirstName: "Jose",
			LastName:  "Reyes",
			Email:     "jose@example.com",
			Password:  "password123",
		}, nil)
		assert.ErrorIs(t, err, ErrProofFileRequired)
	})

	t.Run("submission is audited", func(t *testing.T) {
		var count int64
		require.NoError(t, env.db.Model(&entity.AuditLog{}).
			Where("action = ?", entity.AuditActionVerificationSubmit).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestApproveVerification(t *testing.T) {
	u, env := newVerificationUsecase(t)
	ctx := context.Background()

	resp := submitApplication(t, u, "applicant@example.com")
	require.NoError(t, u.Approve(ctx, resp.ID, env.admin.ID))

	t.Run("applicant becomes a doctor", func(t *testing.T) {
		var user entity.User
		require.NoError(t, env.db.First(&user, "id = ?", resp.UserID).Error)
		assert.Equal(t, entity.RoleIDDoctor, user.RoleID)
	})

	t.Run("empty doctor profile created", func(t *testing.T) {
		var profile entity.DoctorProfile
		require.NoError(t, env.db.First(&profile, "user_id = ?", resp.UserID).Error)
		assert.False(t, profile.IsProfileComplete)
	})

	t.Run("verification is terminal", func(t *testing.T) {
		var verification entity.DoctorVerification
		require.NoError(t, env.db.First(&verification, "id = ?", resp.ID).Error)
		assert.Equal(t, entity.VerificationStatusApproved, verification.Status)
		require.NotNil(t, verification.VerifierID)
		assert.Equal(t, env.admin.ID, *verification.VerifierID)
		assert.NotNil(t, verification.VerifiedAt)
	})

	t.Run("applicant prompted to complete profile", func(t *testing.T) {
		var count int64
		require.NoError(t, env.db.Model(&entity.Notification{}).
			Where("user_id = ? AND type = ?", resp.UserID, entity.NotificationTypeProfileCompletePrompt).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("approval pushed in realtime", func(t *testing.T) {
		messages := env.realtime.messagesFor(resp.UserID)
		require.Len(t, messages, 1)
		assert.Equal(t, service.RealtimeTypeVerificationOK, messages[0].Type)
	})

	t.Run("second decision rejected", func(t *testing.T) {
		assert.ErrorIs(t, u.Approve(ctx, resp.ID, env.admin.ID), ErrVerificationDecided)
		assert.ErrorIs(t, u.Reject(ctx, resp.ID, env.admin.ID), ErrVerificationDecided)
	})

	t.Run("unknown verification", func(t *testing.T) {
		assert.ErrorIs(t, u.Approve(ctx, uuid.New(), env.admin.ID), ErrVerificationNotFound)
	})
}

func TestRejectVerification(t *testing.T) {
	u, env := newVerificationUsecase(t)
	ctx := context.Background()

	resp := submitApplication(t, u, "applicant@example.com")
	require.NoError(t, u.Reject(ctx, resp.ID, env.admin.ID))

	t.Run("account removed", func(t *testing.T) {
		var count int64
		require.NoError(t, env.db.Model(&entity.User{}).Where("id = ?", resp.UserID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("proof document removed", func(t *testing.T) {
		require.Len(t, env.store.deleted, 1)
		assert.Contains(t, resp.PRCIDURL, env.store.deleted[0])
	})

	t.Run("terminal record survives the account", func(t *testing.T) {
		var verification entity.DoctorVerification
		require.NoError(t, env.db.First(&verification, "id = ?", resp.ID).Error)
		assert.Equal(t, entity.VerificationStatusRejected, verification.Status)
		assert.Equal(t, resp.UserID, verification.UserID)
	})

	t.Run("rejection pushed in realtime", func(t *testing.T) {
		messages := env.realtime.messagesFor(resp.UserID)
		require.Len(t, messages, 1)
		assert.Equal(t, service.RealtimeTypeVerificationNotOK, messages[0].Type)
	})

	t.Run("second decision rejected", func(t *testing.T) {
		assert.ErrorIs(t, u.Reject(ctx, resp.ID, env.admin.ID), ErrVerificationDecided)
	})
}

func TestListPendingVerifications(t *testing.T) {
	u, env := newVerificationUsecase(t)
	ctx := context.Background()

	first := submitApplication(t, u, "first@example.com")
	second := submitApplication(t, u, "second@example.com")
	require.NoError(t, u.Approve(ctx, first.ID, env.admin.ID))

	list, err := u.ListPending(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, second.ID, list.Verifications[0].ID)
}
