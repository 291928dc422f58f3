// File: internal/common/request_url.go
package common

import (
	"github.com/gin-gonic/gin"
)

// requestScheme honors the proxy header first; the reference deployment
// terminates TLS in front of the app.
func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// RequestBaseURL reconstructs scheme://host for the inbound request.
func RequestBaseURL(c *gin.Context) string {
	return requestScheme(c) + "://" + c.Request.Host
}

// RequestFullURL reconstructs the absolute URL of the inbound request,
// query string included. CAS service URLs must round-trip exactly.
func RequestFullURL(c *gin.Context) string {
	return RequestBaseURL(c) + c.Request.URL.RequestURI()
}
