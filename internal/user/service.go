// File: internal/user/service.go
package user

import (
	"context"

	"tigerbites_backend/internal/cas"
	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for user-related business logic.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByNetID(ctx context.Context, netid string) (*User, error)
	// EnsureFromAssertion reconciles a CAS assertion with the local user
	// record: insert on first login, refresh email/names otherwise.
	EnsureFromAssertion(ctx context.Context, assertion *cas.Assertion) (*User, error)
	UpdateProfile(ctx context.Context, netid string, req UpdateProfileRequest) (*User, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("user"),
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByNetID(ctx context.Context, netid string) (*User, error) {
	return s.repo.FindByNetID(ctx, netid)
}

func (s *service) EnsureFromAssertion(ctx context.Context, assertion *cas.Assertion) (*User, error) {
	usr, err := s.repo.UpsertIdentity(ctx, &User{
		NetID:     assertion.NetID,
		Email:     assertion.Email,
		FirstName: assertion.FirstName,
		FullName:  assertion.FullName,
	})
	if err != nil {
		s.logger.Error("Failed to upsert user from CAS assertion",
			zap.Error(err), zap.String("netid", assertion.NetID))
		return nil, common.ErrInternalServer
	}
	return usr, nil
}

func (s *service) UpdateProfile(ctx context.Context, netid string, req UpdateProfileRequest) (*User, error) {
	// One field class per call, first match wins.
	switch {
	case req.FavoriteCuisines != nil:
		return s.repo.UpdateFavoriteCuisines(ctx, netid, *req.FavoriteCuisines)
	case req.Allergies != nil:
		return s.repo.UpdateAllergies(ctx, netid, *req.Allergies)
	case req.DietaryRestrictions != nil:
		return s.repo.UpdateDietaryRestrictions(ctx, netid, *req.DietaryRestrictions)
	}
	return nil, common.ErrBadRequest.WithDetails("No valid fields to update.")
}
