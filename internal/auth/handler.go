// File: internal/auth/handler.go
package auth

import (
	"net/http"

	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	service Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes sets up the authentication routes. None of them use the
// session middleware: getusername answers 403 instead of redirecting, and
// the logout routes must work for half-expired sessions too.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, root *gin.Engine) {
	api.GET("/getusername", h.getUsername)
	api.POST("/logout-app", h.logoutApp)
	root.GET("/logoutcas", h.logoutCAS)
}

func (h *Handler) getUsername(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.SessionCookieName)
	netid, err := h.service.SessionNetID(c.Request.Context(), token)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, gin.H{"username": netid})
}

func (h *Handler) logoutApp(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.SessionCookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.logger.Warn("Failed to delete session on logout", zap.Error(err))
	}
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", false, true)
	common.RespondOK(c, gin.H{"status": "logged out"})
}

// logoutCAS ends the CAS single-sign-on session as well, landing the
// browser back on the application's logout page.
func (h *Handler) logoutCAS(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.SessionCookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.logger.Warn("Failed to delete session on CAS logout", zap.Error(err))
	}
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", false, true)

	landing := common.RequestBaseURL(c) + "/logout_cas"
	c.Redirect(http.StatusFound, h.service.LogoutURL(landing))
}
