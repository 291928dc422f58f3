// File: internal/group/service.go
package group

import (
	"context"
	"errors"
	"time"

	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/config"
	"tigerbites_backend/internal/preference"
	"tigerbites_backend/internal/restaurant"
	"tigerbites_backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for group lifecycle and preference
// operations. Every mutation checks group existence before authorization, so
// a caller probing a missing group sees NotFound rather than Forbidden.
type Service interface {
	CreateGroup(ctx context.Context, creatorID uuid.UUID, req CreateGroupRequest) (*Group, error)
	GetGroup(ctx context.Context, callerID, groupID uuid.UUID) (*Group, error)
	ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]Group, error)
	DeleteGroup(ctx context.Context, callerID, groupID uuid.UUID) error
	AddMember(ctx context.Context, callerID, groupID uuid.UUID, netid string) (*Group, error)
	RemoveMember(ctx context.Context, callerID, groupID uuid.UUID, netid string) (*Group, error)
	SetSelectedRestaurant(ctx context.Context, callerID, groupID uuid.UUID, restaurantID *uuid.UUID) (*Group, error)
	SetScheduledMeal(ctx context.Context, callerID, groupID uuid.UUID, mealAt *time.Time) (*Group, error)
	GetGroupPreferences(ctx context.Context, callerID, groupID uuid.UUID) (preference.Snapshot, error)
}

type service struct {
	repo          Repository
	userSvc       user.Service
	restaurantSvc restaurant.Service
	cfg           *config.Config
	logger        *zap.Logger
}

// NewService creates a new group service.
func NewService(repo Repository, userSvc user.Service, restaurantSvc restaurant.Service, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		userSvc:       userSvc,
		restaurantSvc: restaurantSvc,
		cfg:           cfg,
		logger:        logger.Named("group"),
	}
}

// loadGroup fetches the group with members, translating storage failures to
// the generic upstream error.
func (s *service) loadGroup(ctx context.Context, groupID uuid.UUID) (*Group, error) {
	groupModel, err := s.repo.FindByIDWithMembers(ctx, groupID)
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to load group", zap.Error(err), zap.String("groupID", groupID.String()))
		return nil, common.ErrInternalServer
	}
	return groupModel, nil
}

func (s *service) requireRestaurant(ctx context.Context, restaurantID uuid.UUID) error {
	exists, err := s.restaurantSvc.Exists(ctx, restaurantID)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrNotFound.WithDetails("Restaurant not found.")
	}
	return nil
}

func (s *service) CreateGroup(ctx context.Context, creatorID uuid.UUID, req CreateGroupRequest) (*Group, error) {
	name := req.DisplayName()
	if name == "" {
		return nil, common.ErrBadRequest.WithDetails("Group name is required.")
	}
	// Creation treats a missing creator or restaurant as a bad request
	// rather than a missing resource: the group itself does not exist yet.
	if _, err := s.userSvc.GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrBadRequest.WithDetails("Creator not found.")
		}
		return nil, err
	}
	if req.SelectedRestaurantID != nil {
		if err := s.requireRestaurant(ctx, *req.SelectedRestaurantID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrBadRequest.WithDetails("Restaurant not found.")
			}
			return nil, err
		}
	}

	groupModel := &Group{
		Name:                 name,
		CreatorID:            creatorID,
		SelectedRestaurantID: req.SelectedRestaurantID,
	}
	if err := s.repo.Create(ctx, groupModel); err != nil {
		s.logger.Error("Failed to create group", zap.Error(err), zap.String("creatorID", creatorID.String()))
		return nil, common.ErrInternalServer
	}
	return s.loadGroup(ctx, groupModel.ID)
}

func (s *service) GetGroup(ctx context.Context, callerID, groupID uuid.UUID) (*Group, error) {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !IsMember(callerID, groupModel) {
		return nil, common.ErrForbidden.WithDetails("You are not a member of this group.")
	}
	return groupModel, nil
}

func (s *service) ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]Group, error) {
	groups, err := s.repo.FindGroupsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list groups", zap.Error(err), zap.String("userID", userID.String()))
		return nil, common.ErrInternalServer
	}
	return groups, nil
}

func (s *service) DeleteGroup(ctx context.Context, callerID, groupID uuid.UUID) error {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !IsMember(callerID, groupModel) {
		return common.ErrForbidden.WithDetails("You are not a member of this group.")
	}
	if err := s.repo.Delete(ctx, groupID); err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return err
		}
		s.logger.Error("Failed to delete group", zap.Error(err), zap.String("groupID", groupID.String()))
		return common.ErrInternalServer
	}
	return nil
}

func (s *service) AddMember(ctx context.Context, callerID, groupID uuid.UUID, netid string) (*Group, error) {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !allowedByPolicy(s.cfg.AddMemberPolicy, callerID, groupModel) {
		return nil, common.ErrForbidden.WithDetails("You are not allowed to add members to this group.")
	}
	target, err := s.userSvc.GetByNetID(ctx, netid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddMember(ctx, groupID, target.ID); err != nil {
		s.logger.Error("Failed to add member", zap.Error(err),
			zap.String("groupID", groupID.String()), zap.String("netid", netid))
		return nil, common.ErrInternalServer
	}
	return s.loadGroup(ctx, groupID)
}

func (s *service) RemoveMember(ctx context.Context, callerID, groupID uuid.UUID, netid string) (*Group, error) {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !allowedByPolicy(s.cfg.RemoveMemberPolicy, callerID, groupModel) {
		return nil, common.ErrForbidden.WithDetails("You are not allowed to remove members from this group.")
	}
	target, err := s.userSvc.GetByNetID(ctx, netid)
	if err != nil {
		return nil, err
	}
	if IsLeader(target.ID, groupModel) {
		return nil, common.ErrInvalidOperation.WithDetails("cannot remove leader")
	}
	if err := s.repo.RemoveMember(ctx, groupID, target.ID); err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to remove member", zap.Error(err),
			zap.String("groupID", groupID.String()), zap.String("netid", netid))
		return nil, common.ErrInternalServer
	}
	return s.loadGroup(ctx, groupID)
}

func (s *service) SetSelectedRestaurant(ctx context.Context, callerID, groupID uuid.UUID, restaurantID *uuid.UUID) (*Group, error) {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !IsMember(callerID, groupModel) {
		return nil, common.ErrForbidden.WithDetails("You are not a member of this group.")
	}
	if restaurantID != nil {
		if err := s.requireRestaurant(ctx, *restaurantID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpdateSelectedRestaurant(ctx, groupID, restaurantID); err != nil {
		s.logger.Error("Failed to set restaurant", zap.Error(err), zap.String("groupID", groupID.String()))
		return nil, common.ErrInternalServer
	}
	return s.loadGroup(ctx, groupID)
}

func (s *service) SetScheduledMeal(ctx context.Context, callerID, groupID uuid.UUID, mealAt *time.Time) (*Group, error) {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !IsMember(callerID, groupModel) {
		return nil, common.ErrForbidden.WithDetails("You are not a member of this group.")
	}
	if err := s.repo.UpdateScheduledMeal(ctx, groupID, mealAt); err != nil {
		s.logger.Error("Failed to set meal time", zap.Error(err), zap.String("groupID", groupID.String()))
		return nil, common.ErrInternalServer
	}
	return s.loadGroup(ctx, groupID)
}

func (s *service) GetGroupPreferences(ctx context.Context, callerID, groupID uuid.UUID) (preference.Snapshot, error) {
	groupModel, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return preference.Snapshot{}, err
	}
	if !IsMember(callerID, groupModel) {
		return preference.Snapshot{}, common.ErrForbidden.WithDetails("You are not a member of this group.")
	}
	profiles := make([]preference.MemberProfile, len(groupModel.Memberships))
	for i, m := range groupModel.Memberships {
		profiles[i] = preference.MemberProfile{
			FavoriteCuisines:    m.User.FavoriteCuisines,
			DietaryRestrictions: m.User.DietaryRestrictions,
			Allergies:           m.User.Allergies,
		}
	}
	return preference.Aggregate(profiles), nil
}
