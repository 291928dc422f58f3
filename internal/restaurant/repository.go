// File: internal/restaurant/repository.go
package restaurant

import (
	"context"
	"errors"

	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for restaurant catalog reads.
type Repository interface {
	FindAll(ctx context.Context) ([]Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Search filters by case-insensitive substring on name and category.
	// Empty filters match everything.
	Search(ctx context.Context, name, category string) ([]Restaurant, error)
	MenuForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]MenuItem, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM restaurant repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := r.db.WithContext(ctx).Order("name asc").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	var restaurantModel Restaurant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurantModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Restaurant not found.")
		}
		return nil, err
	}
	return &restaurantModel, nil
}

func (r *gormRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Restaurant{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormRepository) Search(ctx context.Context, name, category string) ([]Restaurant, error) {
	var restaurants []Restaurant
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? AND category ILIKE ?", "%"+name+"%", "%"+category+"%").
		Order("name asc").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *gormRepository) MenuForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]MenuItem, error) {
	var items []MenuItem
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&Restaurant{}).
		Distinct("category").
		Where("category IS NOT NULL AND category <> ''").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
