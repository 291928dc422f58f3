// File: internal/auth/model.go
package auth

import (
	"fmt"
	"time"

	"tigerbites_backend/internal/common"
)

// Session is a server-side login session minted after a successful CAS
// ticket validation. The assertion attributes are kept on the row so a
// manually cleared user record can be repaired on a later request.
type Session struct {
	common.BaseModel
	Token     string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_sessions_token"`
	NetID     string    `gorm:"column:netid;type:varchar(64);not null;index"`
	Email     string    `gorm:"type:varchar(255)"`
	FirstName string    `gorm:"column:firstname;type:varchar(100)"`
	FullName  string    `gorm:"column:fullname;type:varchar(255)"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// RedirectError signals that the caller holds no valid session and must
// restart the CAS login round-trip. It is handled only at the HTTP
// boundary and never reaches domain logic.
type RedirectError struct {
	LoginURL string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("authentication required, redirect to %s", e.LoginURL)
}

// Resolution is the outcome of resolving a session: the caller identity,
// plus a fresh token and post-login redirect target when a new session was
// just minted from a ticket.
type Resolution struct {
	Identity          *common.Identity
	NewSessionToken   string
	PostLoginRedirect string
}
