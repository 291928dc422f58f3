// File: internal/common/identity.go
package common

import "github.com/google/uuid"

// Identity is the resolved caller of an authenticated request: the local
// user record reconciled with the CAS assertion stored in the session.
type Identity struct {
	UserID    uuid.UUID `json:"user_id"`
	NetID     string    `json:"netid"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstname"`
	FullName  string    `json:"fullname"`
	IsAdmin   bool      `json:"is_admin"`
}
