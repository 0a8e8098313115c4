package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/accessflow/accessflow/internal/core/domain"
	"github.com/accessflow/accessflow/internal/core/ports"
	"github.com/accessflow/accessflow/internal/core/rbac"
)

// SessionController owns the authentication lifecycle: restoration on
// startup, login, logout, and panel authorization checks. It is the single
// source of truth for "is a user signed in, and as whom".
//
// State transitions are serialized: at most one of restore, login, or logout
// runs at a time, and a login issued while another is pending fails with
// domain.ErrBusy instead of racing the persisted session.
type SessionController struct {
	client ports.CredentialClient
	store  ports.SessionStore
	log    zerolog.Logger

	mu       sync.Mutex
	state    domain.SessionState
	session  *domain.Session
	inFlight bool
}

// NewSessionController returns a controller in the Restoring state. Call
// Restore before rendering any panel.
func NewSessionController(client ports.CredentialClient, store ports.SessionStore, log zerolog.Logger) *SessionController {
	return &SessionController{
		client: client,
		store:  store,
		log:    log,
		state:  domain.StateRestoring,
	}
}

// Restore loads any persisted session and settles the controller into
// Authenticated or Unauthenticated, without contacting the credential
// service. A load failure is treated as "no session": the user lands on the
// login surface instead of a crash. Calling Restore after the controller has
// settled is a no-op and returns the current state.
func (c *SessionController) Restore(ctx context.Context) domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateRestoring {
		return c.state
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("session restore failed, starting unauthenticated")
		c.state = domain.StateUnauthenticated
		return c.state
	}
	if sess == nil {
		c.state = domain.StateUnauthenticated
		return c.state
	}

	c.session = sess
	c.state = domain.StateAuthenticated
	c.log.Info().
		Str("email", sess.User.Email).
		Str("role", string(sess.User.Role)).
		Msg("session restored")
	return c.state
}

// Login authenticates against the credential service and activates the
// returned session. Only valid from Unauthenticated; a login while another
// attempt (or restoration) is pending fails with domain.ErrBusy. If
// persisting the session fails the controller stays Unauthenticated: an
// authenticated state that cannot survive a restart is worse than staying
// logged out.
func (c *SessionController) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	cred := domain.Credential{Email: email, Password: password}
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	switch {
	case c.inFlight, c.state == domain.StateRestoring:
		c.mu.Unlock()
		return nil, domain.ErrBusy
	case c.state == domain.StateAuthenticated:
		c.mu.Unlock()
		return nil, domain.ErrAlreadyAuthenticated
	}
	c.inFlight = true
	c.mu.Unlock()

	sess, err := c.client.Authenticate(ctx, cred.Email, cred.Password)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.log.Debug().Err(err).Str("email", email).Msg("login rejected")
		return nil, err
	}

	if err := c.store.Save(ctx, *sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	c.session = sess
	c.state = domain.StateAuthenticated
	c.log.Info().
		Str("email", sess.User.Email).
		Str("role", string(sess.User.Role)).
		Msg("login succeeded")
	return sess, nil
}

// Logout tears down the session. The transition is unconditional: clearing
// the persisted copy is best-effort, and a failure there is logged rather
// than blocking the logout. The UI-visible effect of logout never depends on
// persistence confirmation.
func (c *SessionController) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateAuthenticated {
		return domain.ErrNotAuthenticated
	}

	email := c.session.User.Email
	c.session = nil
	c.state = domain.StateUnauthenticated

	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("session clear failed, logged out anyway")
	}
	c.log.Info().Str("email", email).Msg("logged out")
	return nil
}

// RequestPanel checks the active user's role against the panel. On refusal
// the caller's active panel must stay where it is; the refusal is signalled
// with domain.ErrUnauthorized, never a silent redirect.
func (c *SessionController) RequestPanel(id domain.PanelID) (domain.Panel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateAuthenticated {
		return domain.Panel{}, domain.ErrNotAuthenticated
	}
	if !rbac.IsAuthorized(c.session.User.Role, id) {
		return domain.Panel{}, domain.ErrUnauthorized
	}
	panel, _ := rbac.Lookup(id)
	return panel, nil
}

// VisiblePanels returns the navigation items for the active user's role, in
// declaration order. Empty when not authenticated.
func (c *SessionController) VisiblePanels() []domain.Panel {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateAuthenticated {
		return nil
	}
	return rbac.VisiblePanels(c.session.User.Role)
}

// CurrentUser returns the authenticated user, if any.
func (c *SessionController) CurrentUser() (domain.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.StateAuthenticated {
		return domain.User{}, false
	}
	return c.session.User, true
}

// State returns the controller's current lifecycle state.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
