package usecase

import (
	"context"

	"bsdoc-server/internal/converter"
	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	UpdateMyProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	userRepo          repository.UserRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorProfileRepo repository.DoctorProfileRepository, userRepo repository.UserRepository) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		userRepo:          userRepo,
	}
}

func (u *doctorUsecase) GetDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

// UpdateMyProfile patches the doctor's own profile. Completion is derived,
// not client-supplied: once specialization and clinic name are both set the
// profile (and the owning user) flips to complete.
func (u *doctorUsecase) UpdateMyProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.ClinicName != "" {
		profile.ClinicName = req.ClinicName
	}
	if req.ClinicAddress != "" {
		profile.ClinicAddress = req.ClinicAddress
	}
	if req.LicenseNumber != "" {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.YearsOfExperience != nil {
		profile.YearsOfExperience = *req.YearsOfExperience
	}

	wasComplete := profile.IsProfileComplete
	profile.IsProfileComplete = profile.Specialization != "" && profile.ClinicName != ""

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
			return err
		}
		if profile.IsProfileComplete != wasComplete {
			user, err := u.userRepo.FindByID(tx, doctorID)
			if err != nil {
				return err
			}
			if user != nil {
				user.IsProfileComplete = profile.IsProfileComplete
				if err := u.userRepo.Update(tx, user); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.DoctorToResponse(profile), nil
}
