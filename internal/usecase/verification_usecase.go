package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"bsdoc-server/internal/converter"
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/entity"
	"bsdoc-server/internal/domain/repository"
	"bsdoc-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrVerificationDecided  = errors.New("verification has already been decided")
	ErrProofFileRequired    = errors.New("proof of profession file is required")
	ErrRejectDeleteUser     = errors.New("failed to delete rejected user account")
)

// ProofFile is the uploaded proof-of-profession document accompanying a
// doctor registration.
type ProofFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

type VerificationUsecase interface {
	Submit(ctx context.Context, req *dto.SubmitVerificationRequest, proof *ProofFile) (*dto.VerificationResponse, error)
	ListPending(ctx context.Context) (*dto.VerificationListResponse, error)
	Approve(ctx context.Context, verificationID, verifierID uuid.UUID) error
	Reject(ctx context.Context, verificationID, verifierID uuid.UUID) error
}

type verificationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	verificationRepo  repository.DoctorVerificationRepository
	objectStore       service.ObjectStore
	notifier          *service.Notifier
	realtime          service.RealtimePublisher
	audit             service.AuditService
}

func NewVerificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	verificationRepo repository.DoctorVerificationRepository,
	objectStore service.ObjectStore,
	notifier *service.Notifier,
	realtime service.RealtimePublisher,
	audit service.AuditService,
) VerificationUsecase {
	return &verificationUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		verificationRepo:  verificationRepo,
		objectStore:       objectStore,
		notifier:          notifier,
		realtime:          realtime,
		audit:             audit,
	}
}

// Submit registers a doctor applicant: creates the account, stores the
// proof document, and opens a pending verification. Admins are notified
// best-effort once the submission is committed.
func (u *verificationUsecase) Submit(ctx context.Context, req *dto.SubmitVerificationRequest, proof *ProofFile) (*dto.VerificationResponse, error) {
	if proof == nil || proof.Content == nil {
		return nil, ErrProofFileRequired
	}

	existing, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email %s: %+v", req.Email, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    entity.RoleIDUser,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	// Key is derived from the new user id and a timestamp to avoid
	// collisions on re-submission
	key := fmt.Sprintf("%s-%d%s", user.ID.String(), time.Now().UnixMilli(), filepath.Ext(proof.Filename))
	proofURL, err := u.objectStore.Upload(ctx, key, proof.ContentType, proof.Content)
	if err != nil {
		u.log.Warnf("Failed to upload proof document: %+v", err)
		return nil, err
	}

	verification := &entity.DoctorVerification{
		UserID:   user.ID,
		PRCIDURL: proofURL,
		Status:   entity.VerificationStatusPending,
	}

	if err := u.verificationRepo.Create(tx, verification); err != nil {
		u.log.Warnf("Failed to create verification: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.notifyAdmins(ctx, user)
	u.audit.Record(ctx, &user.ID, entity.AuditActionVerificationSubmit, entity.JSON{
		"verification_id": verification.ID.String(),
		"email":           user.Email,
	})

	return converter.VerificationToResponse(verification), nil
}

// notifyAdmins fans out a submission alert to every admin. Best-effort:
// the submission already succeeded.
func (u *verificationUsecase) notifyAdmins(ctx context.Context, applicant *entity.User) {
	admins, err := u.userRepo.FindByRoleID(u.db.WithContext(ctx), entity.RoleIDAdmin)
	if err != nil {
		u.log.Warnf("Failed to list admins for verification fan-out: %+v", err)
		return
	}

	adminIDs := make([]uuid.UUID, len(admins))
	for i, admin := range admins {
		adminIDs[i] = admin.ID
	}

	u.notifier.FanOut(ctx, adminIDs, service.NotificationInput{
		Type:    entity.NotificationTypeVerificationSubmitted,
		Message: fmt.Sprintf("%s submitted a doctor verification request.", applicant.FullName()),
		LinkURL: "/admin/doctor-verifications",
		Metadata: entity.JSON{
			"applicant_id": applicant.ID.String(),
		},
	})
}

func (u *verificationUsecase) ListPending(ctx context.Context) (*dto.VerificationListResponse, error) {
	verifications, err := u.verificationRepo.FindByStatus(u.db.WithContext(ctx), entity.VerificationStatusPending)
	if err != nil {
		u.log.Warnf("Failed to list pending verifications: %+v", err)
		return nil, err
	}

	return &dto.VerificationListResponse{
		Verifications: converter.VerificationsToResponses(verifications),
		Total:         len(verifications),
	}, nil
}

// Approve promotes the applicant to doctor. Role change, status
// transition, and doctor profile creation are one transaction: a doctor
// without an approved verification (or the reverse) must not be
// observable. Notification and realtime push run after commit,
// best-effort.
func (u *verificationUsecase) Approve(ctx context.Context, verificationID, verifierID uuid.UUID) error {
	var userID uuid.UUID

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		verification, err := u.verificationRepo.FindByID(tx, verificationID)
		if err != nil {
			u.log.Warnf("Failed to find verification %s: %+v", verificationID, err)
			return err
		}
		if verification == nil {
			return ErrVerificationNotFound
		}
		userID = verification.UserID

		affected, err := u.verificationRepo.MarkDecided(tx, verificationID, entity.VerificationStatusApproved, verifierID, time.Now().UTC())
		if err != nil {
			u.log.Warnf("Failed to mark verification %s approved: %+v", verificationID, err)
			return err
		}
		if affected == 0 {
			return ErrVerificationDecided
		}

		affected, err = u.userRepo.UpdateRoleID(tx, userID, entity.RoleIDDoctor)
		if err != nil {
			u.log.Warnf("Failed to promote user %s: %+v", userID, err)
			return err
		}
		if affected == 0 {
			return ErrUserNotFound
		}

		return u.doctorProfileRepo.Create(tx, &entity.DoctorProfile{UserID: userID})
	})
	if err != nil {
		return err
	}

	u.notifier.Notify(ctx, userID, service.NotificationInput{
		Type:    entity.NotificationTypeProfileCompletePrompt,
		Message: "Your doctor verification was approved. Complete your profile to start accepting appointments.",
		LinkURL: "/doctor/profile",
	})

	if err := u.realtime.PublishVerificationResult(ctx, userID, service.StatusPayload{
		Type:    service.RealtimeTypeVerificationOK,
		Message: "Your doctor verification was approved.",
		Link:    "/doctor/profile",
	}); err != nil {
		u.log.Warnf("Failed to push approval to user %s: %+v", userID, err)
	}

	u.audit.Record(ctx, &verifierID, entity.AuditActionVerificationApprove, entity.JSON{
		"verification_id": verificationID.String(),
		"user_id":         userID.String(),
	})

	u.log.Infof("Verification approved: id=%s, user=%s", verificationID, userID)
	return nil
}

// Reject tears down a doctor application. Proof deletion, profile cleanup,
// and the status update are best-effort; deleting the user account is the
// operation's defining guarantee and its failure is fatal.
func (u *verificationUsecase) Reject(ctx context.Context, verificationID, verifierID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	verification, err := u.verificationRepo.FindByID(db, verificationID)
	if err != nil {
		u.log.Warnf("Failed to find verification %s: %+v", verificationID, err)
		return err
	}
	if verification == nil {
		return ErrVerificationNotFound
	}
	if !verification.IsPending() {
		return ErrVerificationDecided
	}
	userID := verification.UserID

	if key := u.objectStore.KeyFromURL(verification.PRCIDURL); key != "" {
		if err := u.objectStore.Delete(ctx, key); err != nil {
			u.log.Warnf("Failed to delete proof document %s (non-fatal): %+v", key, err)
		}
	}

	if _, err := u.doctorProfileRepo.Delete(db, userID); err != nil {
		u.log.Warnf("Failed to delete doctor profile for %s (non-fatal): %+v", userID, err)
	}

	if _, err := u.verificationRepo.MarkDecided(db, verificationID, entity.VerificationStatusRejected, verifierID, time.Now().UTC()); err != nil {
		u.log.Warnf("Failed to mark verification %s rejected (non-fatal): %+v", verificationID, err)
	}

	// The user-visible effect of rejection is the account removal; an
	// already-deleted account counts as done.
	affected, err := u.userRepo.Delete(db, userID)
	if err != nil {
		u.log.Errorf("Failed to delete rejected user %s: %+v", userID, err)
		return ErrRejectDeleteUser
	}
	if affected == 0 {
		u.log.Infof("Rejected user %s was already deleted", userID)
	}

	if err := u.realtime.PublishVerificationResult(ctx, userID, service.StatusPayload{
		Type:    service.RealtimeTypeVerificationNotOK,
		Message: "Your doctor verification was rejected.",
	}); err != nil {
		u.log.Warnf("Failed to push rejection to user %s: %+v", userID, err)
	}

	u.audit.Record(ctx, &verifierID, entity.AuditActionVerificationReject, entity.JSON{
		"verification_id": verificationID.String(),
		"user_id":         userID.String(),
	})

	u.log.Infof("Verification rejected: id=%s, user=%s", verificationID, userID)
	return nil
}
