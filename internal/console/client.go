// Package console holds the outbound client the dashboard console uses to
// talk to the credential service. The backend is authoritative; beyond
// marshalling, no validation happens here.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/accessflow/accessflow/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Fallback messages when the service gives us nothing better.
const (
	msgLoginFailed  = "Login failed"
	msgNetworkError = "Network error. Please try again."
)

// Client submits credentials to the credential service's login endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the service rooted at baseURL. The timeout
// bounds the whole login round trip; timeouts surface as network errors.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Authenticate implements ports.CredentialClient. A 2xx response with a
// valid payload yields the session verbatim; any non-2xx or malformed
// payload is an invalid-credentials failure carrying the service's message
// when present; transport failures are network errors.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.AuthError{Kind: domain.ErrNetwork, Message: msgNetworkError}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &domain.AuthError{Kind: domain.ErrNetwork, Message: msgNetworkError}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		msg := msgLoginFailed
		if json.Unmarshal(payload, &er) == nil && er.Message != "" {
			msg = er.Message
		}
		return nil, &domain.AuthError{Kind: domain.ErrInvalidCredentials, Message: msg}
	}

	var lr loginResponse
	if err := json.Unmarshal(payload, &lr); err != nil || lr.Token == "" {
		return nil, &domain.AuthError{Kind: domain.ErrInvalidCredentials, Message: msgLoginFailed}
	}

	return &domain.Session{Token: lr.Token, User: lr.User}, nil
}
