// File: internal/group/handler.go
package group

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for group handlers.
type Handler struct {
	service      Service
	mealLocation *time.Location
	logger       *zap.Logger
}

// NewHandler creates a new group handler. The meal source timezone comes
// from config and is validated at startup.
func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	loc, err := time.LoadLocation(cfg.MealSourceTimezone)
	if err != nil {
		logger.Warn("Falling back to UTC for meal timestamps",
			zap.String("timezone", cfg.MealSourceTimezone), zap.Error(err))
		loc = time.UTC
	}
	return &Handler{
		service:      service,
		mealLocation: loc,
		logger:       logger,
	}
}

// RegisterRoutes sets up the group lifecycle routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	groups := router.Group("/groups", sessionMW)
	groups.GET("", h.listGroups)
	groups.POST("", h.createGroup)
	groups.GET("/:id", h.getGroup)
	groups.DELETE("/:id", h.deleteGroup)
	groups.POST("/:id/members", h.addMember)
	groups.DELETE("/:id/members/:netid", h.removeMember)
	groups.PUT("/:id/restaurant", h.setRestaurant)
	groups.PUT("/:id/meal", h.setMeal)
	groups.GET("/:id/preferences", h.getPreferences)
}

func parseGroupID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid group ID format."))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) listGroups(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groups, err := h.service.ListGroupsForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]GroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = ToGroupResponse(&g)
	}
	common.RespondOK(c, gin.H{"groups": responses})
}

func (h *Handler) createGroup(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}
	groupModel, err := h.service.CreateGroup(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, gin.H{"group": ToGroupResponse(groupModel)})
}

func (h *Handler) getGroup(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	groupModel, err := h.service.GetGroup(c.Request.Context(), userID, groupID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"group": ToGroupResponse(groupModel)})
}

func (h *Handler) deleteGroup(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteGroup(c.Request.Context(), userID, groupID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondMessage(c, "Group deleted.")
}

func (h *Handler) addMember(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}
	netid := strings.TrimSpace(req.NetID)
	if netid == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A netid is required."))
		return
	}
	groupModel, err := h.service.AddMember(c.Request.Context(), userID, groupID, netid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"group": ToGroupResponse(groupModel)})
}

func (h *Handler) removeMember(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	netid := strings.TrimSpace(c.Param("netid"))
	if netid == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A netid is required."))
		return
	}
	groupModel, err := h.service.RemoveMember(c.Request.Context(), userID, groupID, netid)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"group": ToGroupResponse(groupModel)})
}

// setRestaurant requires the restaurant_id key to be present; an explicit
// null clears the selection.
func (h *Handler) setRestaurant(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}
	rawID, present := raw["restaurant_id"]
	if !present {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("A restaurant_id field is required."))
		return
	}
	var restaurantID *uuid.UUID
	if err := json.Unmarshal(rawID, &restaurantID); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid restaurant ID format."))
		return
	}
	groupModel, err := h.service.SetSelectedRestaurant(c.Request.Context(), userID, groupID, restaurantID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"group": ToGroupResponse(groupModel)})
}

func (h *Handler) setMeal(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	var req SetMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request body."))
		return
	}
	var mealAt *time.Time
	if req.ScheduledMealAt != nil {
		normalized, err := NormalizeMealTime(*req.ScheduledMealAt, h.mealLocation)
		if err != nil {
			common.RespondWithError(c, err)
			return
		}
		mealAt = &normalized
	}
	groupModel, err := h.service.SetScheduledMeal(c.Request.Context(), userID, groupID, mealAt)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"group": ToGroupResponse(groupModel)})
}

func (h *Handler) getPreferences(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	groupID, ok := parseGroupID(c)
	if !ok {
		return
	}
	snapshot, err := h.service.GetGroupPreferences(c.Request.Context(), userID, groupID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"preferences": snapshot})
}
