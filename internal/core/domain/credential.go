package domain

import "strings"

// Credential is the transient login input. It exists only for the duration
// of a single login attempt and is never persisted.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the minimal client-side checks: both fields present and a
// plausible email. The credential service stays authoritative beyond that.
func (c Credential) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return &AuthError{Kind: ErrInvalidCredentials, Message: "Email and password are required"}
	}
	if !strings.Contains(c.Email, "@") {
		return &AuthError{Kind: ErrInvalidCredentials, Message: "Email must be a valid address"}
	}
	return nil
}
