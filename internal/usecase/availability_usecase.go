package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bsdoc-server/internal/converter"
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrAvailabilityExists   = errors.New("availability already set for this day")
	ErrAvailabilityNotOwned = errors.New("availability does not belong to you")
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM:SS")
	ErrInvalidDateFormat    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeWindow    = errors.New("start time must be before end time")
)

// slotMinutes is the fixed width of a bookable slot.
const slotMinutes = 30

type AvailabilityUsecase interface {
	CreateAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetMyAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
	UpdateAvailability(ctx context.Context, doctorID uuid.UUID, id int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	DeleteAvailability(ctx context.Context, doctorID uuid.UUID, id int) error
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.TimeSlotsResponse, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
	}
}

func (u *availabilityUsecase) CreateAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := validateTimeWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	existing, err := u.availabilityRepo.FindByDoctorAndDay(u.db.WithContext(ctx), doctorID, *req.DayOfWeek)
	if err != nil {
		u.log.Warnf("Failed to check existing availability: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAvailabilityExists
	}

	availability := &entity.Availability{
		DoctorID:  doctorID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := u.availabilityRepo.Create(u.db.WithContext(ctx), availability); err != nil {
		if isDuplicateKeyError(err, "availability") {
			return nil, ErrAvailabilityExists
		}
		u.log.Warnf("Failed to create availability: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) GetMyAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	availabilities, err := u.availabilityRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Availabilities: converter.AvailabilitiesToResponses(availabilities),
		Total:          len(availabilities),
	}, nil
}

func (u *availabilityUsecase) UpdateAvailability(ctx context.Context, doctorID uuid.UUID, id int, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	availability, err := u.availabilityRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find availability %d: %+v", id, err)
		return nil, err
	}
	if availability == nil {
		return nil, ErrAvailabilityNotFound
	}
	if availability.DoctorID != doctorID {
		return nil, ErrAvailabilityNotOwned
	}

	if req.StartTime != "" {
		availability.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		availability.EndTime = req.EndTime
	}
	if err := validateTimeWindow(availability.StartTime, availability.EndTime); err != nil {
		return nil, err
	}

	if err := u.availabilityRepo.Update(u.db.WithContext(ctx), availability); err != nil {
		u.log.Warnf("Failed to update availability %d: %+v", id, err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) DeleteAvailability(ctx context.Context, doctorID uuid.UUID, id int) error {
	availability, err := u.availabilityRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find availability %d: %+v", id, err)
		return err
	}
	if availability == nil {
		return ErrAvailabilityNotFound
	}
	if availability.DoctorID != doctorID {
		return ErrAvailabilityNotOwned
	}

	if _, err := u.availabilityRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete availability %d: %+v", id, err)
		return err
	}

	return nil
}

// GetAvailableSlots computes the bookable slots for one doctor on one
// date: the doctor's working window for that weekday, cut into 30-minute
// slots, minus slots whose start time is already booked. No window for
// the weekday yields an empty list, not an error.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.TimeSlotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	response := &dto.TimeSlotsResponse{
		DoctorID:  doctorID,
		Date:      date,
		TimeSlots: []string{},
	}

	availability, err := u.availabilityRepo.FindByDoctorAndDay(u.db.WithContext(ctx), doctorID, int(day.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if availability == nil {
		return response, nil
	}

	slots, err := GenerateTimeSlots(availability.StartTime, availability.EndTime)
	if err != nil {
		u.log.Warnf("Invalid availability window for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	bookedTimes, err := u.appointmentRepo.FindBookedTimes(u.db.WithContext(ctx), doctorID, date)
	if err != nil {
		u.log.Warnf("Failed to find booked times for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	for _, slot := range slots {
		if _, taken := booked[slot]; taken {
			continue
		}
		response.TimeSlots = append(response.TimeSlots, slot)
	}

	return response, nil
}

// GenerateTimeSlots cuts a working window into fixed-width slot start
// times formatted HH:MM:SS. Slots are half-open [t, t+30m) and the last
// slot's end never exceeds endTime. Hours are emitted modulo 24; windows
// crossing midnight produce no slots.
func GenerateTimeSlots(startTime, endTime string) ([]string, error) {
	start, err := parseMinutesOfDay(startTime)
	if err != nil {
		return nil, err
	}
	end, err := parseMinutesOfDay(endTime)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for t := start; t+slotMinutes <= end; t += slotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d:00", (t/60)%24, t%60))
	}

	return slots, nil
}

// parseMinutesOfDay parses "HH:MM:SS" (or "HH:MM") into minutes since
// midnight, discarding seconds.
func parseMinutesOfDay(value string) (int, error) {
	parsed, err := time.Parse("15:04:05", value)
	if err != nil {
		parsed, err = time.Parse("15:04", value)
		if err != nil {
			return 0, ErrInvalidTimeFormat
		}
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func validateTimeWindow(startTime, endTime string) error {
	start, err := parseMinutesOfDay(startTime)
	if err != nil {
		return err
	}
	end, err := parseMinutesOfDay(endTime)
	if err != nil {
		return err
	}
	if start >= end {
		return ErrInvalidTimeWindow
	}
	return nil
}
