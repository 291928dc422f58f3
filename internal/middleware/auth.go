// File: internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"tigerbites_backend/internal/auth"
	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionAuth creates a Gin middleware that resolves the caller's session
// through the CAS bridge. An unauthenticated browser is redirected to the
// CAS login page; a request arriving with a fresh ticket gets its session
// cookie set and is bounced back to the same URL with the ticket stripped.
func SessionAuth(authService auth.Service, cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cfg.SessionCookieName)
		ticket := c.Query("ticket")

		resolution, err := authService.ResolveSession(
			c.Request.Context(), token, common.RequestFullURL(c), ticket)
		if err != nil {
			var redirect *auth.RedirectError
			if errors.As(err, &redirect) {
				c.Redirect(http.StatusFound, redirect.LoginURL)
				c.Abort()
				return
			}
			common.RespondWithError(c, err)
			return
		}

		if resolution.NewSessionToken != "" {
			maxAge := int(cfg.SessionTTL.Seconds())
			c.SetCookie(cfg.SessionCookieName, resolution.NewSessionToken, maxAge, "/", "", false, true)
			logger.Debug("Session cookie issued", zap.String("netid", resolution.Identity.NetID))
			if resolution.PostLoginRedirect != "" {
				c.Redirect(http.StatusFound, resolution.PostLoginRedirect)
				c.Abort()
				return
			}
		}

		c.Set(common.IdentityKey, resolution.Identity)
		c.Set(common.SessionTokenKey, token)
		c.Next()
	}
}
