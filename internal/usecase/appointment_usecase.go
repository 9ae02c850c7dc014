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
	"bsdoc-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to you")
	ErrAppointmentNotCancelled = errors.New("only cancelled appointments can be hidden")
	ErrSlotTaken               = errors.New("this time slot is already booked")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrInvalidTransition       = errors.New("appointment is not in a state allowing this transition")
	ErrInvalidStatus           = errors.New("invalid appointment status")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error
	CompleteAppointment(ctx context.Context, doctorID uuid.UUID, id uuid.UUID) error
	HideAppointment(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	userRepo          repository.UserRepository
	notifier          *service.Notifier
	audit             service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	userRepo repository.UserRepository,
	notifier *service.Notifier,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		userRepo:          userRepo,
		notifier:          notifier,
		audit:             audit,
	}
}

// CreateAppointment books a slot for the authenticated patient. The
// pre-check on an existing booking is advisory; the partial unique index
// on (doctor, date, time, status=booked) decides the race, so a duplicate
// key on insert also surfaces as a conflict.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if _, err := time.Parse("2006-01-02", req.AppointmentDate); err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := parseMinutesOfDay(req.AppointmentTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	existing, err := u.appointmentRepo.FindBookedSlot(u.db.WithContext(ctx), req.DoctorID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		u.log.Warnf("Failed to check slot: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       patientID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          entity.AppointmentStatusBooked,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "appointment") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.notifyDoctor(ctx, appointment, patientID)
	u.audit.Record(ctx, &patientID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      appointment.DoctorID.String(),
		"date":           appointment.AppointmentDate,
		"time":           appointment.AppointmentTime,
	})

	u.log.Infof("Appointment booked: id=%s, doctor=%s, slot=%s %s", appointment.ID, appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime)
	return converter.AppointmentToResponse(appointment), nil
}

// notifyDoctor alerts the doctor about a new booking. Best-effort: the
// booking already succeeded.
func (u *appointmentUsecase) notifyDoctor(ctx context.Context, appointment *entity.Appointment, patientID uuid.UUID) {
	patientName := "A patient"
	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to look up patient %s for notification: %+v", patientID, err)
	} else if patient != nil {
		patientName = patient.FullName()
	}

	u.notifier.Notify(ctx, appointment.DoctorID, service.NotificationInput{
		Type:    entity.NotificationTypeAppointmentBooked,
		Message: fmt.Sprintf("%s booked an appointment on %s at %s.", patientName, appointment.AppointmentDate, appointment.AppointmentTime),
		LinkURL: "/doctor/appointments",
		Metadata: entity.JSON{
			"appointment_id": appointment.ID.String(),
		},
	})
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID, false)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment cancels a booked appointment. Allowed for the
// booking patient and for the appointment's doctor.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != requesterID && appointment.DoctorID != requesterID {
		return ErrAppointmentNotOwned
	}

	affected, err := u.appointmentRepo.UpdateStatusIf(u.db.WithContext(ctx), id, entity.AppointmentStatusBooked, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	u.audit.Record(ctx, &requesterID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": id.String(),
	})

	return nil
}

// CompleteAppointment marks a booked appointment done. Doctor only.
func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, doctorID uuid.UUID, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctorID {
		return ErrAppointmentNotOwned
	}

	affected, err := u.appointmentRepo.UpdateStatusIf(u.db.WithContext(ctx), id, entity.AppointmentStatusBooked, entity.AppointmentStatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	u.audit.Record(ctx, &doctorID, entity.AuditActionAppointmentComplete, entity.JSON{
		"appointment_id": id.String(),
	})

	return nil
}

// HideAppointment soft-hides a cancelled appointment from the patient's
// list. Only the booking patient may hide, and only when cancelled.
func (u *appointmentUsecase) HideAppointment(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != requesterID {
		return ErrAppointmentNotOwned
	}
	if !appointment.IsCancelled() {
		return ErrAppointmentNotCancelled
	}

	if err := u.appointmentRepo.Hide(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to hide appointment %s: %+v", id, err)
		return err
	}

	return nil
}

// UpdateAppointment is the admin-scoped generic patch: date, time, and
// status may be changed freely, nothing beyond existence is enforced.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.AppointmentDate != "" {
		if _, err := time.Parse("2006-01-02", req.AppointmentDate); err != nil {
			return nil, ErrInvalidDateFormat
		}
		appointment.AppointmentDate = req.AppointmentDate
	}
	if req.AppointmentTime != "" {
		if _, err := parseMinutesOfDay(req.AppointmentTime); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		appointment.AppointmentTime = req.AppointmentTime
	}
	if req.Status != "" {
		switch entity.AppointmentStatus(req.Status) {
		case entity.AppointmentStatusBooked, entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted:
			appointment.Status = entity.AppointmentStatus(req.Status)
		default:
			return nil, ErrInvalidStatus
		}
	}

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "appointment") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	affected, err := u.appointmentRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
