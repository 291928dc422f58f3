// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"time"

	"tigerbites_backend/internal/cas"
	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/config"
	"tigerbites_backend/internal/platform/crypto"
	"tigerbites_backend/internal/user"

	"go.uber.org/zap"
)

const sessionTokenBytes = 32

// Service reconciles external CAS assertions with local sessions and user
// records.
type Service interface {
	// ResolveSession authenticates a request. It consults the session
	// store first, then falls back to the CAS ticket round-trip. It
	// returns a *RedirectError when the browser must visit the CAS login
	// page.
	ResolveSession(ctx context.Context, token, requestURL, ticket string) (*Resolution, error)
	// SessionNetID reports the netid bound to an active session without
	// any side effects.
	SessionNetID(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	LogoutURL(serviceURL string) string
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type service struct {
	sessions  Repository
	users     user.Service
	casClient *cas.Client
	cfg       *config.Config
	logger    *zap.Logger
	now       func() time.Time
	genToken  func(int) (string, error)
}

// NewService creates a new session-bridge service.
func NewService(
	sessions Repository,
	users user.Service,
	casClient *cas.Client,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		sessions:  sessions,
		users:     users,
		casClient: casClient,
		cfg:       cfg,
		logger:    logger.Named("auth"),
		now:       time.Now,
		genToken:  crypto.GenerateSecureRandomString,
	}
}

func (s *service) ResolveSession(ctx context.Context, token, requestURL, ticket string) (*Resolution, error) {
	if token != "" {
		resolution, err := s.resolveExisting(ctx, token)
		if err == nil {
			return resolution, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		// Stale or unknown token: treat like a first visit.
	}

	// No session. Without a ticket the browser must be sent to the CAS
	// login page with the current URL as the return target.
	if ticket == "" {
		return nil, &RedirectError{LoginURL: s.casClient.LoginURL(requestURL)}
	}

	stripped := cas.StripTicket(requestURL)
	assertion, err := s.casClient.Validate(ctx, ticket, stripped)
	if err != nil {
		if errors.Is(err, cas.ErrValidationFailed) {
			// Invalid ticket: retry the login round-trip.
			return nil, &RedirectError{LoginURL: s.casClient.LoginURL(stripped)}
		}
		s.logger.Error("CAS validation call failed", zap.Error(err))
		return nil, common.ErrInternalServer
	}

	usr, err := s.users.EnsureFromAssertion(ctx, assertion)
	if err != nil {
		return nil, err
	}

	newToken, err := s.genToken(sessionTokenBytes)
	if err != nil {
		s.logger.Error("Failed to generate session token", zap.Error(err))
		return nil, common.ErrInternalServer
	}
	session := &Session{
		Token:     newToken,
		NetID:     assertion.NetID,
		Email:     assertion.Email,
		FirstName: assertion.FirstName,
		FullName:  assertion.FullName,
		ExpiresAt: s.now().Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error("Failed to persist session", zap.Error(err), zap.String("netid", assertion.NetID))
		return nil, common.ErrInternalServer
	}

	s.logger.Info("Session established from CAS ticket", zap.String("netid", assertion.NetID))
	return &Resolution{
		Identity:          usr.ToIdentity(),
		NewSessionToken:   newToken,
		PostLoginRedirect: stripped,
	}, nil
}

// resolveExisting turns an active session into an identity. If the user
// record has vanished it is silently re-inserted from the session's stored
// assertion attributes (repair-on-read, not an error path).
func (s *service) resolveExisting(ctx context.Context, token string) (*Resolution, error) {
	session, err := s.sessions.FindByToken(ctx, token, s.now())
	if err != nil {
		return nil, err
	}

	usr, err := s.users.GetByNetID(ctx, session.NetID)
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Warn("User record missing for active session, re-inserting",
			zap.String("netid", session.NetID))
		usr, err = s.users.EnsureFromAssertion(ctx, &cas.Assertion{
			NetID:     session.NetID,
			Email:     session.Email,
			FirstName: session.FirstName,
			FullName:  session.FullName,
		})
	}
	if err != nil {
		return nil, err
	}
	return &Resolution{Identity: usr.ToIdentity()}, nil
}

func (s *service) SessionNetID(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrForbidden
	}
	session, err := s.sessions.FindByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrForbidden
		}
		return "", err
	}
	return session.NetID, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

func (s *service) LogoutURL(serviceURL string) string {
	return s.casClient.LogoutURL(serviceURL)
}

func (s *service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
