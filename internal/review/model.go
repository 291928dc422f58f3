// File: internal/review/model.go
package review

import (
	"time"

	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
)

// MaxCommentLength caps the free-text comment on a review.
const MaxCommentLength = 500

// Review is a rated opinion a user left on a restaurant.
type Review struct {
	common.BaseModel
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	NetID        string    `gorm:"column:netid;type:text;not null"`
	Rating       int       `gorm:"not null"`
	Comment      string    `gorm:"type:text"`
}

// TableName specifies the table name for the Review model.
func (Review) TableName() string {
	return "reviews"
}

// Feedback is a free-form note a user sent about a restaurant, surfaced to
// admins rather than displayed publicly.
type Feedback struct {
	common.BaseModel
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	NetID        string    `gorm:"column:netid;type:text;not null"`
	Response     string    `gorm:"type:text;not null"`
}

// TableName specifies the table name for the Feedback model.
func (Feedback) TableName() string {
	return "feedback"
}

// --- DTOs ---

// CreateReviewRequest is the payload for posting a review. Rating is a
// pointer so a missing field is distinguishable from zero.
type CreateReviewRequest struct {
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// CreateFeedbackRequest is the payload for posting feedback.
type CreateFeedbackRequest struct {
	Response string `json:"response"`
}

// ReviewResponse defines the review shape sent in API responses.
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	NetID        string    `json:"netid"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackResponse defines the feedback shape sent in API responses.
type FeedbackResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	NetID        string    `json:"netid"`
	Response     string    `json:"response"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToReviewResponse converts a Review model to its DTO.
func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		RestaurantID: r.RestaurantID,
		NetID:        r.NetID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

// ToFeedbackResponse converts a Feedback model to its DTO.
func ToFeedbackResponse(f *Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           f.ID,
		RestaurantID: f.RestaurantID,
		NetID:        f.NetID,
		Response:     f.Response,
		CreatedAt:    f.CreatedAt,
	}
}
