package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps the in-memory database alive across queries
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.DoctorVerification{},
		&entity.Availability{},
		&entity.Appointment{},
		&entity.Notification{},
		&entity.AuditLog{},
	))

	// Partial unique index matching the production migration
	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (doctor_id, appointment_date, appointment_time)
		WHERE status = 'booked'
	`).Error)

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDUser, RoleName: entity.RoleUser},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func createTestUser(t *testing.T, db *gorm.DB, email string, roleID int) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Test",
		LastName:  strings.Split(email, "@")[0],
		RoleID:    roleID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestDoctor(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()

	user := createTestUser(t, db, email, entity.RoleIDDoctor)
	require.NoError(t, db.Create(&entity.DoctorProfile{UserID: user.ID}).Error)
	return user
}

// fakeObjectStore records uploads and deletions in memory.
type fakeObjectStore struct {
	mu        sync.Mutex
	uploads   map[string]string
	deleted   []string
	uploadErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{uploads: map[string]string{}}
}

func (s *fakeObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	url := fmt.Sprintf("https://store.test/%s", key)
	s.uploads[key] = url
	return url, nil
}

func (s *fakeObjectStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeObjectStore) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, "https://store.test/")
}

// fakeRealtimePublisher records pushed payloads per user.
type fakeRealtimePublisher struct {
	mu        sync.Mutex
	published []publishedMessage
}

type publishedMessage struct {
	UserID  uuid.UUID
	Payload service.StatusPayload
}

func (p *fakeRealtimePublisher) PublishVerificationResult(ctx context.Context, userID uuid.UUID, payload service.StatusPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedMessage{UserID: userID, Payload: payload})
	return nil
}

func (p *fakeRealtimePublisher) messagesFor(userID uuid.UUID) []service.StatusPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []service.StatusPayload
	for _, msg := range p.published {
		if msg.UserID == userID {
			out = append(out, msg.Payload)
		}
	}
	return out
}
