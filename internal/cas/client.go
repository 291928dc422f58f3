// File: internal/cas/client.go
package cas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"tigerbites_backend/internal/config"

	"go.uber.org/zap"
)

// Assertion is the identity asserted by the CAS server for a validated
// ticket: the principal (netid) plus the attribute bag the campus IdP
// releases to this service.
type Assertion struct {
	NetID     string
	Email     string
	FirstName string
	FullName  string
}

// ErrValidationFailed is returned when the CAS server rejects a ticket.
// The caller is expected to restart the login round-trip.
var ErrValidationFailed = fmt.Errorf("cas: ticket validation failed")

// Client validates CAS login tickets against the campus identity provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a CAS client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	base := cfg.CASBaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.Named("cas"),
	}
}

// LoginURL builds the CAS login URL that sends the browser back to
// serviceURL after authentication.
func (c *Client) LoginURL(serviceURL string) string {
	return c.baseURL + "login?service=" + url.QueryEscape(serviceURL)
}

// LogoutURL builds the CAS logout URL with a post-logout landing target.
func (c *Client) LogoutURL(serviceURL string) string {
	return c.baseURL + "logout?service=" + url.QueryEscape(serviceURL)
}

// casValidateResponse mirrors the JSON document the CAS validate endpoint
// returns: exactly one of authenticationSuccess / authenticationFailure is
// present under serviceResponse.
type casValidateResponse struct {
	ServiceResponse *struct {
		AuthenticationSuccess *struct {
			User       string              `json:"user"`
			Attributes map[string][]string `json:"attributes"`
		} `json:"authenticationSuccess"`
		AuthenticationFailure *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"authenticationFailure"`
	} `json:"serviceResponse"`
}

// Validate checks a login ticket with the CAS server. serviceURL must be
// the request URL with the ticket parameter stripped, exactly as it was
// passed to the login endpoint. Returns ErrValidationFailed when the
// server rejects the ticket.
func (c *Client) Validate(ctx context.Context, ticket, serviceURL string) (*Assertion, error) {
	valURL := c.baseURL + "validate?service=" + url.QueryEscape(serviceURL) +
		"&ticket=" + url.QueryEscape(ticket) + "&format=json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, valURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cas: building validate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cas: validate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cas: validate returned status %d", resp.StatusCode)
	}

	var body casValidateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cas: decoding validate response: %w", err)
	}
	if body.ServiceResponse == nil {
		c.logger.Warn("CAS response missing serviceResponse envelope")
		return nil, ErrValidationFailed
	}
	if failure := body.ServiceResponse.AuthenticationFailure; failure != nil {
		c.logger.Info("CAS authentication failure",
			zap.String("code", failure.Code),
			zap.String("description", failure.Description),
		)
		return nil, ErrValidationFailed
	}
	success := body.ServiceResponse.AuthenticationSuccess
	if success == nil || success.User == "" {
		c.logger.Warn("Unexpected CAS response shape")
		return nil, ErrValidationFailed
	}

	return &Assertion{
		NetID:     success.User,
		Email:     firstAttr(success.Attributes, "mail"),
		FirstName: firstAttr(success.Attributes, "givenname"),
		FullName:  firstAttr(success.Attributes, "displayname"),
	}, nil
}

func firstAttr(attrs map[string][]string, key string) string {
	if vals, ok := attrs[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

var (
	ticketParamRe   = regexp.MustCompile(`ticket=[^&]*&?`)
	danglingQueryRe = regexp.MustCompile(`\?&?$|&$`)
)

// StripTicket removes the ticket query parameter the CAS server appended to
// the service URL, so the URL can be reused as the login target.
func StripTicket(rawURL string) string {
	stripped := ticketParamRe.ReplaceAllString(rawURL, "")
	return danglingQueryRe.ReplaceAllString(stripped, "")
}
