package usecase

import (
	"context"
	"testing"

	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		want      []string
		wantErr   error
	}{
		{
			name:      "one hour window yields two slots",
			startTime: "09:00:00",
			endTime:   "10:00:00",
			want:      []string{"09:00:00", "09:30:00"},
		},
		{
			name:      "trailing partial slot is dropped",
			startTime: "09:00:00",
			endTime:   "09:45:00",
			want:      []string{"09:00:00"},
		},
		{
			name:      "empty window yields no slots",
			startTime: "09:00:00",
			endTime:   "09:00:00",
			want:      []string{},
		},
		{
			name:      "window shorter than a slot yields no slots",
			startTime: "09:00:00",
			endTime:   "09:15:00",
			want:      []string{},
		},
		{
			name:      "window crossing midnight yields no slots",
			startTime: "22:00:00",
			endTime:   "02:00:00",
			want:      []string{},
		},
		{
			name:      "full day",
			startTime: "00:00:00",
			endTime:   "23:59:59",
			want:      nil, // length checked below
		},
		{
			name:      "minutes precision without seconds",
			startTime: "08:30",
			endTime:   "09:30",
			want:      []string{"08:30:00", "09:00:00"},
		},
		{
			name:      "malformed start time",
			startTime: "morning",
			endTime:   "10:00:00",
			wantErr:   ErrInvalidTimeFormat,
		},
		{
			name:      "malformed end time",
			startTime: "09:00:00",
			endTime:   "25:00:00",
			wantErr:   ErrInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateTimeSlots(tt.startTime, tt.endTime)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	t.Run("full day slot count", func(t *testing.T) {
		got, err := GenerateTimeSlots("00:00:00", "23:59:59")
		require.NoError(t, err)
		// 23.5 hours of full slots fit before 23:59:59
		assert.Len(t, got, 47)
		assert.Equal(t, "00:00:00", got[0])
		assert.Equal(t, "23:00:00", got[46])
	})
}

func newAvailabilityUsecase(t *testing.T) (AvailabilityUsecase, *testAvailabilityEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testAvailabilityEnv{
		db:     db,
		doctor: createTestDoctor(t, db, "doc@example.com"),
	}
	u := NewAvailabilityUsecase(db, newTestLogger(), repository.NewAvailabilityRepository(), repository.NewAppointmentRepository())
	return u, env
}

type testAvailabilityEnv struct {
	db     *gorm.DB
	doctor *entity.User
}

func intPtr(v int) *int { return &v }

func TestCreateAvailability(t *testing.T) {
	u, env := newAvailabilityUsecase(t)
	ctx := context.Background()

	created, err := u.CreateAvailability(ctx, env.doctor.ID, &dto.CreateAvailabilityRequest{
		DayOfWeek: intPtr(1),
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.DayOfWeek)
	assert.Equal(t, env.doctor.ID, created.DoctorID)

	t.Run("duplicate weekday rejected", func(t *testing.T) {
		_, err := u.CreateAvailability(ctx, env.doctor.ID, &dto.CreateAvailabilityRequest{
			DayOfWeek: intPtr(1),
			StartTime: "10:00:00",
			EndTime:   "12:00:00",
		})
		assert.ErrorIs(t, err, ErrAvailabilityExists)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		_, err := u.CreateAvailability(ctx, env.doctor.ID, &dto.CreateAvailabilityRequest{
			DayOfWeek: intPtr(2),
			StartTime: "17:00:00",
			EndTime:   "09:00:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeWindow)
	})

	t.Run("malformed time rejected", func(t *testing.T) {
		_, err := u.CreateAvailability(ctx, env.doctor.ID, &dto.CreateAvailabilityRequest{
			DayOfWeek: intPtr(2),
			StartTime: "nine",
			EndTime:   "17:00:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestUpdateAvailabilityOwnership(t *testing.T) {
	u, env := newAvailabilityUsecase(t)
	ctx := context.Background()

	created, err := u.CreateAvailability(ctx, env.doctor.ID, &dto.CreateAvailabilityRequest{
		DayOfWeek: intPtr(3),
		StartTime: "09:00:00",
		EndTime:   "12:00:00",
	})
	require.NoError(t, err)

	other := createTestDoctor(t, env.db, "other@example.com")
	_, err = u.UpdateAvailability(ctx, other.ID, created.ID, &dto.UpdateAvailabilityRequest{EndTime: "13:00:00"})
	assert.ErrorIs(t, err, ErrAvailabilityNotOwned)

	err = u.DeleteAvailability(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, ErrAvailabilityNotOwned)

	updated, err := u.UpdateAvailability(ctx, env.doctor.ID, created.ID, &dto.UpdateAvailabilityRequest{EndTime: "13:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "13:00:00", updated.EndTime)

	require.NoError(t, u.DeleteAvailability(ctx, env.doctor.ID, created.ID))
	err = u.DeleteAvailability(ctx, env.doctor.ID, created.ID)
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
}

func TestGetAvailableSlots(t *testing.T) {
	u, env := newAvailabilityUsecase(t)
	ctx := context.Background()

	// 2026-09-07 is a Monday
	const date = "2026-09-07"

	t.Run("no window yields empty list", func(t *testing.T) {
		slots, err := u.GetAvailableSlots(ctx, env.doctor.ID, date)
		require.NoError(t, err)
		assert.NotNil(t, slots.TimeSlots)
		assert.Empty(t, slots.TimeSlots)
	})

	_, err := u.CreateAvailability(ctx, env.doctor.ID, &dto.CreateAvailabilityRequest{
		DayOfWeek: intPtr(1),
		StartTime: "09:00:00",
		EndTime:   "10:00:00",
	})
	require.NoError(t, err)

	t.Run("window cut into slots", func(t *testing.T) {
		slots, err := u.GetAvailableSlots(ctx, env.doctor.ID, date)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00:00", "09:30:00"}, slots.TimeSlots)
	})

	t.Run("booked slot removed", func(t *testing.T) {
		patient := createTestUser(t, env.db, "patient@example.com", entity.RoleIDUser)
		require.NoError(t, env.db.Create(&entity.Appointment{
			DoctorID:        env.doctor.ID,
			PatientID:       patient.ID,
			AppointmentDate: date,
			AppointmentTime: "09:00:00",
			Status:          entity.AppointmentStatusBooked,
		}).Error)

		slots, err := u.GetAvailableSlots(ctx, env.doctor.ID, date)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:30:00"}, slots.TimeSlots)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		require.NoError(t, env.db.Model(&entity.Appointment{}).
			Where("doctor_id = ? AND appointment_date = ?", env.doctor.ID, date).
			Update("status", entity.AppointmentStatusCancelled).Error)

		slots, err := u.GetAvailableSlots(ctx, env.doctor.ID, date)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00:00", "09:30:00"}, slots.TimeSlots)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		_, err := u.GetAvailableSlots(ctx, env.doctor.ID, "07-09-2026")
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})
}
