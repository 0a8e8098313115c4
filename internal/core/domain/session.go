package domain

// SessionState is the lifecycle state of the session controller.
type SessionState string

const (
	StateRestoring       SessionState = "restoring"
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticated   SessionState = "authenticated"
)

// Session binds an opaque bearer token to the user it designates. A session
// exists if and only if the application considers the user authenticated.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
