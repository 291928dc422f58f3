// File: internal/group/repository.go
package group

import (
	"context"
	"errors"
	"time"

	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for group and membership persistence.
type Repository interface {
	// Create inserts the group row and the creator's leader membership in
	// one transaction.
	Create(ctx context.Context, groupModel *Group) error
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*Group, error)
	FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]Group, error)
	// AddMember inserts a member-role membership; the duplicate-key case is
	// a success no-op.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	// Delete removes all memberships then the group row in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateSelectedRestaurant(ctx context.Context, id uuid.UUID, restaurantID *uuid.UUID) error
	UpdateScheduledMeal(ctx context.Context, id uuid.UUID, mealAt *time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM group repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, groupModel *Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(groupModel).Error; err != nil {
			return err
		}
		leader := Membership{
			GroupID: groupModel.ID,
			UserID:  groupModel.CreatorID,
			Role:    RoleLeader,
		}
		return tx.Create(&leader).Error
	})
}

func (r *gormRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*Group, error) {
	var groupModel Group
	err := r.db.WithContext(ctx).
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("memberships.created_at asc")
		}).
		Preload("Memberships.User").
		Where("id = ?", id).
		First(&groupModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Group not found.")
		}
		return nil, err
	}
	return &groupModel, nil
}

func (r *gormRepository) FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]Group, error) {
	var groups []Group
	err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.group_id = groups.id").
		Where("memberships.user_id = ?", userID).
		Order("groups.created_at desc").
		Preload("Memberships", func(db *gorm.DB) *gorm.DB {
			return db.Order("memberships.created_at asc")
		}).
		Preload("Memberships.User").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *gormRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	membership := Membership{
		GroupID: groupID,
		UserID:  userID,
		Role:    RoleMember,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&membership).Error
}

func (r *gormRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Membership not found.")
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&Membership{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&Group{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Group not found.")
		}
		return nil
	})
}

func (r *gormRepository) UpdateSelectedRestaurant(ctx context.Context, id uuid.UUID, restaurantID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Group{}).
		Where("id = ?", id).
		Update("selected_restaurant_id", restaurantID).Error
}

func (r *gormRepository) UpdateScheduledMeal(ctx context.Context, id uuid.UUID, mealAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Group{}).
		Where("id = ?", id).
		Update("scheduled_meal_at", mealAt).Error
}
