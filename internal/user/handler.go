// File: internal/user/handler.go
package user

import (
	"tigerbites_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for profile operations. All of them
// require an authenticated session.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	profileGroup := router.Group("/profile", sessionMW)
	{
		profileGroup.GET("", h.getProfile)
		profileGroup.PUT("", h.updateProfile)
		profileGroup.POST("", h.updateProfile)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	usr, err := h.service.GetByNetID(c.Request.Context(), identity.NetID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	resp := ToProfileResponse(usr)
	common.RespondOK(c, gin.H{
		"username":             resp.Username,
		"firstname":            resp.FirstName,
		"fullname":             resp.FullName,
		"email":                resp.Email,
		"favorite_cuisine":     resp.FavoriteCuisines,
		"allergies":            resp.Allergies,
		"dietary_restrictions": resp.DietaryRestrictions,
		"admin_status":         resp.IsAdmin,
	})
}

func (h *Handler) updateProfile(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Profile update: Invalid request body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("No data provided."))
		return
	}

	usr, err := h.service.UpdateProfile(c.Request.Context(), identity.NetID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	resp := ToProfileResponse(usr)
	common.RespondOK(c, gin.H{
		"username":             resp.Username,
		"firstname":            resp.FirstName,
		"fullname":             resp.FullName,
		"email":                resp.Email,
		"favorite_cuisine":     resp.FavoriteCuisines,
		"allergies":            resp.Allergies,
		"dietary_restrictions": resp.DietaryRestrictions,
	})
}
