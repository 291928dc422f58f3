// File: internal/auth/repository.go
package auth

import (
	"context"
	"errors"
	"time"

	"tigerbites_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for session persistence.
type Repository interface {
	Create(ctx context.Context, session *Session) error
	// FindByToken returns the session for a token; an expired session is
	// reported as not found.
	FindByToken(ctx context.Context, token string, now time.Time) (*Session, error)
	DeleteByToken(ctx context.Context, token string) error
	// DeleteExpired purges sessions past their expiry and returns how many
	// rows were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM session repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, session *Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *gormRepository) FindByToken(ctx context.Context, token string, now time.Time) (*Session, error) {
	var session Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("No active session for this token.")
		}
		return nil, err
	}
	return &session, nil
}

func (r *gormRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&Session{}).Error
}

func (r *gormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Session{})
	return result.RowsAffected, result.Error
}
