// File: internal/restaurant/handler.go
package restaurant

import (
	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for restaurant handlers. The user
// service backs the home view, which pairs the catalog with the caller's
// saved preferences.
type Handler struct {
	service Service
	userSvc user.Service
	logger  *zap.Logger
}

// NewHandler creates a new restaurant handler.
func NewHandler(service Service, userSvc user.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		userSvc: userSvc,
		logger:  logger,
	}
}

// RegisterRoutes sets up the restaurant catalog routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	router.GET("/home", sessionMW, h.home)
	router.GET("/map", sessionMW, h.mapView)
	router.GET("/restaurants", sessionMW, h.listRestaurants)
	router.GET("/restaurants/:id", sessionMW, h.getRestaurant)
	router.GET("/search", sessionMW, h.search)
	router.GET("/cuisines", sessionMW, h.listCuisines)
}

// home backs the landing page: the full catalog plus the caller's first
// name and saved dining preferences.
func (h *Handler) home(c *gin.Context) {
	identity := common.GetIdentityFromContext(c)
	restaurants, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	usr, err := h.userSvc.GetByNetID(c.Request.Context(), identity.NetID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	firstname := usr.FirstName
	if firstname == "" {
		firstname = usr.NetID
	}
	common.RespondOK(c, gin.H{
		"restaurants": toRestaurantResponses(restaurants),
		"firstname":   firstname,
		"preferences": gin.H{
			"favorite_cuisine":     emptyIfNil(usr.FavoriteCuisines),
			"allergies":            emptyIfNil(usr.Allergies),
			"dietary_restrictions": emptyIfNil(usr.DietaryRestrictions),
		},
	})
}

// mapView serves the catalog for the map page.
func (h *Handler) mapView(c *gin.Context) {
	restaurants, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"restaurants": toRestaurantResponses(restaurants)})
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (h *Handler) listRestaurants(c *gin.Context) {
	restaurants, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"restaurants": toRestaurantResponses(restaurants)})
}

func (h *Handler) getRestaurant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid restaurant ID format."))
		return
	}
	restaurantModel, menu, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	menuResponses := make([]MenuItemResponse, len(menu))
	for i, item := range menu {
		menuResponses[i] = ToMenuItemResponse(&item)
	}
	common.RespondOK(c, gin.H{
		"restaurant": ToRestaurantResponse(restaurantModel),
		"menu":       menuResponses,
	})
}

func (h *Handler) search(c *gin.Context) {
	name := c.Query("name")
	category := c.Query("category")
	restaurants, err := h.service.Search(c.Request.Context(), name, category)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"restaurants": toRestaurantResponses(restaurants)})
}

func (h *Handler) listCuisines(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"cuisines": categories})
}

func toRestaurantResponses(restaurants []Restaurant) []RestaurantResponse {
	responses := make([]RestaurantResponse, len(restaurants))
	for i, r := range restaurants {
		responses[i] = ToRestaurantResponse(&r)
	}
	return responses
}
