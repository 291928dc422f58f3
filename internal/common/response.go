// File: internal/common/response.go
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError sends a JSON error response.
// Non-APIError values are logged server-side and wrapped as a generic 500 so
// no upstream detail (SQL text, driver messages) reaches the client.
func RespondWithError(c *gin.Context, err error) {
	apiErr, ok := IsAPIError(err)
	if !ok {
		if l, exists := c.Get("logger"); exists {
			if logger, isZap := l.(*zap.Logger); isZap {
				logger.Error("Unhandled internal error being wrapped", zap.Error(err))
			}
		}
		apiErr = ErrInternalServer
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, apiErr)
}

// RespondJSON sends a plain JSON payload, matching the original API's
// top-level-key response shapes ({"groups": ...}, {"group": ...}, etc).
func RespondJSON(c *gin.Context, statusCode int, payload gin.H) {
	c.JSON(statusCode, payload)
}

// RespondOK sends a 200 OK response.
func RespondOK(c *gin.Context, payload gin.H) {
	RespondJSON(c, http.StatusOK, payload)
}

// RespondCreated sends a 201 Created response.
func RespondCreated(c *gin.Context, payload gin.H) {
	RespondJSON(c, http.StatusCreated, payload)
}

// RespondMessage sends a 200 with a {"message": ...} body.
func RespondMessage(c *gin.Context, message string) {
	RespondOK(c, gin.H{"message": message})
}
