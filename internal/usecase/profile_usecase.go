package usecase

import (
	"context"
	"errors"

	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo}
}

// GetProfile returns a profile. Non-admin callers may only read their own
// record (IDOR guard via context identity).
func (u *profileUsecase) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	if err := requireSelfOrAdmin(ctx, id); err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// UpdateProfile merges partial fields into the profile. Role and email are
// immutable through this path.
func (u *profileUsecase) UpdateProfile(ctx context.Context, id string, fields domain.ProfileUpdate) (*domain.Profile, error) {
	if err := requireSelfOrAdmin(ctx, id); err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func requireSelfOrAdmin(ctx context.Context, id string) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID == id {
		return nil
	}
	if role, _ := ctx.Value(domain.KeyUserRole).(string); role == domain.RoleAdmin {
		return nil
	}
	return apperror.Forbidden("You can only view your own profile")
}
