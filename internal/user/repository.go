// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByNetID(ctx context.Context, netid string) (*User, error)
	// UpsertIdentity inserts a user for an unseen netid, or refreshes
	// email/name attributes for an existing one. Preference columns are
	// never written here.
	UpsertIdentity(ctx context.Context, user *User) (*User, error)
	UpdateFavoriteCuisines(ctx context.Context, netid string, values []string) (*User, error)
	UpdateAllergies(ctx context.Context, netid string, values []string) (*User, error)
	UpdateDietaryRestrictions(ctx context.Context, netid string, values []string) (*User, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM user repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, user *User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("User with this netid already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
		}
		return nil, err
	}
	return &userModel, nil
}

func (r *gormRepository) FindByNetID(ctx context.Context, netid string) (*User, error) {
	var userModel User
	err := r.db.WithContext(ctx).Where("netid = ?", netid).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this netid.")
		}
		return nil, err
	}
	return &userModel, nil
}

func (r *gormRepository) UpsertIdentity(ctx context.Context, user *User) (*User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "netid"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "firstname", "fullname", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	// Re-read so the caller sees the persisted row, including preference
	// fields and the original ID on the conflict path.
	return r.FindByNetID(ctx, user.NetID)
}

func (r *gormRepository) UpdateFavoriteCuisines(ctx context.Context, netid string, values []string) (*User, error) {
	return r.updateArrayColumn(ctx, netid, "favorite_cuisine", values)
}

func (r *gormRepository) UpdateAllergies(ctx context.Context, netid string, values []string) (*User, error) {
	return r.updateArrayColumn(ctx, netid, "allergies", values)
}

func (r *gormRepository) UpdateDietaryRestrictions(ctx context.Context, netid string, values []string) (*User, error) {
	return r.updateArrayColumn(ctx, netid, "dietary_restrictions", values)
}

func (r *gormRepository) updateArrayColumn(ctx context.Context, netid, column string, values []string) (*User, error) {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("netid = ?", netid).
		Update(column, pq.StringArray(values))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("User not found with this netid.")
	}
	return r.FindByNetID(ctx, netid)
}
