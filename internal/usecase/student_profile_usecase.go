package usecase

import (
	"context"
	"errors"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type studentProfileUsecase struct {
	studentRepo domain.StudentProfileRepository
	validate    *validator.Validate
}

func NewStudentProfileUsecase(studentRepo domain.StudentProfileRepository, validate *validator.Validate) domain.StudentProfileUsecase {
	return &studentProfileUsecase{studentRepo: studentRepo, validate: validate}
}

func (uc *studentProfileUsecase) GetStudentProfile(ctx context.Context, profileID string) (*domain.StudentProfile, error) {
	profile, err := uc.studentRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Student profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *studentProfileUsecase) UpdateStudentProfile(ctx context.Context, profileID string, profile *domain.StudentProfile) error {
	// Force the owner from context (prevent IDOR)
	profile.ProfileID = profileID

	if err := uc.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if profile.ExpectedSalaryMax > 0 && profile.ExpectedSalaryMax < profile.ExpectedSalaryMin {
		return apperror.BadRequest("Maximum expected salary cannot be below minimum")
	}

	if err := uc.studentRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Student profile not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
