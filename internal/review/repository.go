// File: internal/review/repository.go
package review

import (
	"context"
	"errors"

	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for review and feedback persistence.
type Repository interface {
	CreateReview(ctx context.Context, reviewModel *Review) error
	FindReviewByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindReviewsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Review, error)
	FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
	FindAllReviews(ctx context.Context) ([]Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error

	CreateFeedback(ctx context.Context, feedbackModel *Feedback) error
	FindFeedbackByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	FindFeedbackByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Feedback, error)
	FindAllFeedback(ctx context.Context) ([]Feedback, error)
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM review repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateReview(ctx context.Context, reviewModel *Review) error {
	return r.db.WithContext(ctx).Create(reviewModel).Error
}

func (r *gormRepository) FindReviewByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	var reviewModel Review
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reviewModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Review not found.")
		}
		return nil, err
	}
	return &reviewModel, nil
}

func (r *gormRepository) FindReviewsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *gormRepository) FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]Review, error) {
	var reviews []Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *gormRepository) FindAllReviews(ctx context.Context) ([]Review, error) {
	var reviews []Review
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *gormRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Review not found.")
	}
	return nil
}

func (r *gormRepository) CreateFeedback(ctx context.Context, feedbackModel *Feedback) error {
	return r.db.WithContext(ctx).Create(feedbackModel).Error
}

func (r *gormRepository) FindFeedbackByID(ctx context.Context, id uuid.UUID) (*Feedback, error) {
	var feedbackModel Feedback
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&feedbackModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Feedback not found.")
		}
		return nil, err
	}
	return &feedbackModel, nil
}

func (r *gormRepository) FindFeedbackByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Feedback, error) {
	var entries []Feedback
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormRepository) FindAllFeedback(ctx context.Context) ([]Feedback, error) {
	var entries []Feedback
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *gormRepository) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Feedback{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Feedback not found.")
	}
	return nil
}
