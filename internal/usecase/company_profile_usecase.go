package usecase

import (
	"context"
	"errors"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"
)

type companyProfileUsecase struct {
	companyRepo domain.CompanyProfileRepository
}

// NewCompanyProfileUsecase creates a new company profile usecase
func NewCompanyProfileUsecase(companyRepo domain.CompanyProfileRepository) domain.CompanyProfileUsecase {
	return &companyProfileUsecase{companyRepo: companyRepo}
}

func (uc *companyProfileUsecase) GetCompanyProfile(ctx context.Context, profileID string) (*domain.CompanyProfile, error) {
	profile, err := uc.companyRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Company profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *companyProfileUsecase) UpdateCompanyProfile(ctx context.Context, profileID string, profile *domain.CompanyProfile) error {
	// Force the owner from context (prevent IDOR)
	profile.ProfileID = profileID

	if err := uc.companyRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Company profile not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// SetVerificationStatus advances the verification lifecycle. Admin only; the
// status is never changed by the owning company itself.
func (uc *companyProfileUsecase) SetVerificationStatus(ctx context.Context, companyID string, status string) error {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if role != domain.RoleAdmin {
		return apperror.Forbidden("Only admins can change verification status")
	}

	valid := false
	for _, s := range domain.ValidVerificationStatuses {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		return apperror.BadRequest("Invalid status. Must be: pending, verified, or rejected")
	}

	if err := uc.companyRepo.UpdateVerificationStatus(ctx, companyID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Company profile not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
