// File: internal/review/service.go
package review

import (
	"context"
	"fmt"
	"strings"

	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/restaurant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for review and feedback operations.
type Service interface {
	CreateReview(ctx context.Context, identity *common.Identity, restaurantID uuid.UUID, req CreateReviewRequest) (*Review, error)
	GetReviewsForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Review, error)
	GetReviewsForUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
	GetAllReviews(ctx context.Context) ([]Review, error)
	// DeleteReview removes a review when the caller authored it or is an
	// admin.
	DeleteReview(ctx context.Context, identity *common.Identity, reviewID uuid.UUID) error

	CreateFeedback(ctx context.Context, identity *common.Identity, restaurantID uuid.UUID, req CreateFeedbackRequest) (*Feedback, error)
	GetFeedbackForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Feedback, error)
	GetAllFeedback(ctx context.Context) ([]Feedback, error)
	DeleteFeedback(ctx context.Context, identity *common.Identity, feedbackID uuid.UUID) error
}

type service struct {
	repo          Repository
	restaurantSvc restaurant.Service
	logger        *zap.Logger
}

// NewService creates a new review service.
func NewService(repo Repository, restaurantSvc restaurant.Service, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		restaurantSvc: restaurantSvc,
		logger:        logger.Named("review"),
	}
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

func (s *service) CreateReview(ctx context.Context, identity *common.Identity, restaurantID uuid.UUID, req CreateReviewRequest) (*Review, error) {
	if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
		return nil, common.ErrBadRequest.WithDetails("Rating must be an integer between 1 and 5")
	}
	comment := strings.TrimSpace(req.Comment)
	if len(comment) > MaxCommentLength {
		return nil, common.ErrBadRequest.WithDetails(
			fmt.Sprintf("Comment must be at most %d characters", MaxCommentLength))
	}
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	reviewModel := &Review{
		RestaurantID: restaurantID,
		UserID:       identity.UserID,
		NetID:        identity.NetID,
		Rating:       *req.Rating,
		Comment:      comment,
	}
	if err := s.repo.CreateReview(ctx, reviewModel); err != nil {
		s.logger.Error("Failed to create review", zap.Error(err), zap.String("netid", identity.NetID))
		return nil, common.ErrInternalServer
	}
	return reviewModel, nil
}

func (s *service) GetReviewsForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Review, error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.FindReviewsByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("Failed to load reviews", zap.Error(err), zap.String("restaurantID", restaurantID.String()))
		return nil, common.ErrInternalServer
	}
	return reviews, nil
}

func (s *service) GetReviewsForUser(ctx context.Context, userID uuid.UUID) ([]Review, error) {
	reviews, err := s.repo.FindReviewsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user reviews", zap.Error(err), zap.String("userID", userID.String()))
		return nil, common.ErrInternalServer
	}
	return reviews, nil
}

func (s *service) GetAllReviews(ctx context.Context) ([]Review, error) {
	reviews, err := s.repo.FindAllReviews(ctx)
	if err != nil {
		s.logger.Error("Failed to load reviews", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return reviews, nil
}

func (s *service) DeleteReview(ctx context.Context, identity *common.Identity, reviewID uuid.UUID) error {
	reviewModel, err := s.repo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if reviewModel.UserID != identity.UserID && !identity.IsAdmin {
		return common.ErrForbidden.WithDetails("You can only delete your own reviews.")
	}
	if err := s.repo.DeleteReview(ctx, reviewID); err != nil {
		s.logger.Error("Failed to delete review", zap.Error(err), zap.String("reviewID", reviewID.String()))
		return common.ErrInternalServer
	}
	return nil
}

func (s *service) CreateFeedback(ctx context.Context, identity *common.Identity, restaurantID uuid.UUID, req CreateFeedbackRequest) (*Feedback, error) {
	response := strings.TrimSpace(req.Response)
	if response == "" {
		return nil, common.ErrBadRequest.WithDetails("Response must be a non-empty string")
	}
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	feedbackModel := &Feedback{
		RestaurantID: restaurantID,
		UserID:       identity.UserID,
		NetID:        identity.NetID,
		Response:     response,
	}
	if err := s.repo.CreateFeedback(ctx, feedbackModel); err != nil {
		s.logger.Error("Failed to create feedback", zap.Error(err), zap.String("netid", identity.NetID))
		return nil, common.ErrInternalServer
	}
	return feedbackModel, nil
}

func (s *service) GetFeedbackForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]Feedback, error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	entries, err := s.repo.FindFeedbackByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("Failed to load feedback", zap.Error(err), zap.String("restaurantID", restaurantID.String()))
		return nil, common.ErrInternalServer
	}
	return entries, nil
}

func (s *service) GetAllFeedback(ctx context.Context) ([]Feedback, error) {
	entries, err := s.repo.FindAllFeedback(ctx)
	if err != nil {
		s.logger.Error("Failed to load feedback", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	return entries, nil
}

func (s *service) DeleteFeedback(ctx context.Context, identity *common.Identity, feedbackID uuid.UUID) error {
	feedbackModel, err := s.repo.FindFeedbackByID(ctx, feedbackID)
	if err != nil {
		return err
	}
	if feedbackModel.UserID != identity.UserID && !identity.IsAdmin {
		return common.ErrForbidden.WithDetails("You can only delete your own feedback.")
	}
	if err := s.repo.DeleteFeedback(ctx, feedbackID); err != nil {
		s.logger.Error("Failed to delete feedback", zap.Error(err), zap.String("feedbackID", feedbackID.String()))
		return common.ErrInternalServer
	}
	return nil
}
