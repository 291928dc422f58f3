// File: internal/restaurant/service.go
package restaurant

import (
	"context"

	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for restaurant catalog reads.
type Service interface {
	GetAll(ctx context.Context) ([]Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, []MenuItem, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, name, category string) ([]Restaurant, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new restaurant service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("restaurant"),
	}
}

func (s *service) GetAll(ctx context.Context) ([]Restaurant, error) {
	restaurants, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to load restaurants", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return restaurants, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Restaurant, []MenuItem, error) {
	restaurantModel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	menu, err := s.repo.MenuForRestaurant(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load menu", zap.Error(err), zap.String("restaurantID", id.String()))
		return nil, nil, common.ErrInternalServer
	}
	return restaurantModel, menu, nil
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logger.Error("Failed to check restaurant existence", zap.Error(err), zap.String("restaurantID", id.String()))
		return false, common.ErrInternalServer
	}
	return exists, nil
}

func (s *service) Search(ctx context.Context, name, category string) ([]Restaurant, error) {
	restaurants, err := s.repo.Search(ctx, name, category)
	if err != nil {
		s.logger.Error("Restaurant search failed", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return restaurants, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to load cuisine categories", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return categories, nil
}
