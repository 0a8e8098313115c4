package domain

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNetwork              = errors.New("network error")
	ErrBusy                 = errors.New("another login is already in progress")
	ErrUnauthorized         = errors.New("panel not authorized for role")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
)

// AuthError pairs a machine-checkable failure kind with the message shown to
// the user. Kind is ErrInvalidCredentials or ErrNetwork, so callers can
// branch with errors.Is while Error() stays presentable as-is.
type AuthError struct {
	Kind    error
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Kind }
