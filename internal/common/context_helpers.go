// File: internal/common/context_helpers.go
package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// IdentityKey is the context key for the resolved caller identity.
	IdentityKey = "identity"
	// SessionTokenKey is the context key for the raw session token.
	SessionTokenKey = "sessionToken"
)

// GetIdentityFromContext retrieves the resolved identity from the Gin
// context. Returns nil if the request was not authenticated.
func GetIdentityFromContext(c *gin.Context) *Identity {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// GetUserIDFromContext retrieves the caller's user ID from the Gin context.
// Returns uuid.Nil for unauthenticated requests.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	identity := GetIdentityFromContext(c)
	if identity == nil {
		return uuid.Nil
	}
	return identity.UserID
}
