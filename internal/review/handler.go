// File: internal/review/handler.go
package review

import (
	"tigerbites_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for review handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new review handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the review and feedback routes. Listings are open
// to any session user; deletes are restricted to the author or an admin in
// the service layer.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	router.POST("/restaurants/:id/reviews", sessionMW, h.createReview)
	router.GET("/restaurants/:id/reviews", sessionMW, h.listRestaurantReviews)
	router.GET("/reviews", sessionMW, h.listAllReviews)
	router.GET("/users/reviews", sessionMW, h.listOwnReviews)
	router.DELETE("/reviews/:id", sessionMW, h.deleteReview)

	router.POST("/restaurants/:id/feedback", sessionMW, h.createFeedback)
	router.GET("/restaurants/:id/feedback", sessionMW, h.listRestaurantFeedback)
	router.GET("/feedback", sessionMW, h.listAllFeedback)
	router.DELETE("/feedback/:id", sessionMW, h.deleteFeedback)
}

func parseIDParam(c *gin.Context, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid "+label+" ID format."))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) createReview(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	restaurantID, ok := parseIDParam(c, "restaurant")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}
	reviewModel, err := h.service.CreateReview(c.Request.Context(), identity, restaurantID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, gin.H{"review": ToReviewResponse(reviewModel)})
}

func (h *Handler) listRestaurantReviews(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant")
	if !ok {
		return
	}
	reviews, err := h.service.GetReviewsForRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"reviews": toReviewResponses(reviews)})
}

func (h *Handler) listAllReviews(c *gin.Context) {
	reviews, err := h.service.GetAllReviews(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"reviews": toReviewResponses(reviews)})
}

func (h *Handler) listOwnReviews(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	reviews, err := h.service.GetReviewsForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"reviews": toReviewResponses(reviews)})
}

func (h *Handler) deleteReview(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	reviewID, ok := parseIDParam(c, "review")
	if !ok {
		return
	}
	if err := h.service.DeleteReview(c.Request.Context(), identity, reviewID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, "Review deleted.")
}

func (h *Handler) createFeedback(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	restaurantID, ok := parseIDParam(c, "restaurant")
	if !ok {
		return
	}
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}
	feedbackModel, err := h.service.CreateFeedback(c.Request.Context(), identity, restaurantID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, gin.H{"feedback": ToFeedbackResponse(feedbackModel)})
}

func (h *Handler) listRestaurantFeedback(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant")
	if !ok {
		return
	}
	entries, err := h.service.GetFeedbackForRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"feedback": toFeedbackResponses(entries)})
}

func (h *Handler) listAllFeedback(c *gin.Context) {
	entries, err := h.service.GetAllFeedback(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"feedback": toFeedbackResponses(entries)})
}

func (h *Handler) deleteFeedback(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	feedbackID, ok := parseIDParam(c, "feedback")
	if !ok {
		return
	}
	if err := h.service.DeleteFeedback(c.Request.Context(), identity, feedbackID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, "Feedback deleted.")
}

func toReviewResponses(reviews []Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = ToReviewResponse(&r)
	}
	return responses
}

func toFeedbackResponses(entries []Feedback) []FeedbackResponse {
	responses := make([]FeedbackResponse, len(entries))
	for i, f := range entries {
		responses[i] = ToFeedbackResponse(&f)
	}
	return responses
}
