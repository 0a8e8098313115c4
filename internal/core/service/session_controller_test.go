package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/accessflow/accessflow/internal/core/domain"
)

var adminUser = domain.User{ID: "1", Email: "admin@example.com", Role: domain.RoleAdmin, Name: "Admin"}

type stubClient struct {
	mu     sync.Mutex
	calls  int
	authFn func(ctx context.Context, email, password string) (*domain.Session, error)
}

func (c *stubClient) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.authFn(ctx, email, password)
}

func (c *stubClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type stubStore struct {
	mu       sync.Mutex
	session  *domain.Session
	saves    int
	saveErr  error
	loadErr  error
	clearErr error
}

func (s *stubStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	copy := session
	s.session = &copy
	return nil
}

func (s *stubStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.session == nil {
		return nil, nil
	}
	copy := *s.session
	return &copy, nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	s.session = nil
	return nil
}

func (s *stubStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func successClient(session domain.Session) *stubClient {
	return &stubClient{authFn: func(context.Context, string, string) (*domain.Session, error) {
		copy := session
		return &copy, nil
	}}
}

func newController(client *stubClient, store *stubStore) *SessionController {
	return NewSessionController(client, store, zerolog.Nop())
}

func TestSessionController_StartsRestoring(t *testing.T) {
	c := newController(successClient(domain.Session{}), &stubStore{})
	if c.State() != domain.StateRestoring {
		t.Fatalf("expected restoring, got %s", c.State())
	}
}

func TestSessionController_RestoreEmptyStore(t *testing.T) {
	c := newController(successClient(domain.Session{}), &stubStore{})
	if state := c.Restore(context.Background()); state != domain.StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", state)
	}
}

func TestSessionController_RestorePersistedSession(t *testing.T) {
	viewer := domain.User{ID: "7", Email: "v@example.com", Role: domain.RoleViewer, Name: "Vera"}
	store := &stubStore{session: &domain.Session{Token: "t-viewer", User: viewer}}
	client := successClient(domain.Session{})
	c := newController(client, store)

	if state := c.Restore(context.Background()); state != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", state)
	}
	if client.callCount() != 0 {
		t.Fatalf("restoration must not contact the credential service")
	}

	// Viewer may open the viewer panel but not the admin panel.
	if _, err := c.RequestPanel(domain.PanelAdmin); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	panel, err := c.RequestPanel(domain.PanelViewer)
	if err != nil {
		t.Fatalf("RequestPanel(viewer) failed: %v", err)
	}
	if panel.ID != domain.PanelViewer {
		t.Fatalf("unexpected panel: %+v", panel)
	}
}

func TestSessionController_RestoreLoadError(t *testing.T) {
	store := &stubStore{loadErr: errors.New("disk on fire")}
	c := newController(successClient(domain.Session{}), store)

	if state := c.Restore(context.Background()); state != domain.StateUnauthenticated {
		t.Fatalf("load failure must settle unauthenticated, got %s", state)
	}
}

func TestSessionController_RestoreIsIdempotent(t *testing.T) {
	store := &stubStore{session: &domain.Session{Token: "t1", User: adminUser}}
	c := newController(successClient(domain.Session{}), store)

	c.Restore(context.Background())
	store.session = nil
	if state := c.Restore(context.Background()); state != domain.StateAuthenticated {
		t.Fatalf("second restore must be a no-op, got %s", state)
	}
}

func TestSessionController_LoginSuccess(t *testing.T) {
	session := domain.Session{Token: "t1", User: adminUser}
	store := &stubStore{}
	c := newController(successClient(session), store)
	c.Restore(context.Background())

	got, err := c.Login(context.Background(), "admin@example.com", "validpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.Token != "t1" || got.User != adminUser {
		t.Fatalf("unexpected session: %+v", got)
	}
	if c.State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", c.State())
	}
	if store.saveCount() != 1 || store.session == nil || store.session.Token != "t1" {
		t.Fatalf("session not persisted: %+v", store.session)
	}

	// Admin navigation includes the audit panel.
	hasAudit := false
	for _, p := range c.VisiblePanels() {
		if p.ID == domain.PanelAudit {
			hasAudit = true
		}
	}
	if !hasAudit {
		t.Fatalf("admin must see the audit panel")
	}
}

func TestSessionController_LoginInvalidCredentials(t *testing.T) {
	client := &stubClient{authFn: func(context.Context, string, string) (*domain.Session, error) {
		return nil, &domain.AuthError{Kind: domain.ErrInvalidCredentials, Message: "Invalid email or password"}
	}}
	store := &stubStore{}
	c := newController(client, store)
	c.Restore(context.Background())

	_, err := c.Login(context.Background(), "x@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "Invalid email or password" {
		t.Fatalf("message must surface verbatim, got %q", err.Error())
	}
	if c.State() != domain.StateUnauthenticated {
		t.Fatalf("failed login must not change state, got %s", c.State())
	}
	if store.saveCount() != 0 {
		t.Fatalf("failed login must not persist anything")
	}
}

func TestSessionController_LoginNetworkError(t *testing.T) {
	client := &stubClient{authFn: func(context.Context, string, string) (*domain.Session, error) {
		return nil, &domain.AuthError{Kind: domain.ErrNetwork, Message: "Network error. Please try again."}
	}}
	c := newController(client, &stubStore{})
	c.Restore(context.Background())

	_, err := c.Login(context.Background(), "a@example.com", "pass")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if c.State() != domain.StateUnauthenticated {
		t.Fatalf("network failure must not change state")
	}
}

func TestSessionController_LoginValidation(t *testing.T) {
	client := successClient(domain.Session{Token: "t1", User: adminUser})
	c := newController(client, &stubStore{})
	c.Restore(context.Background())

	cases := []struct{ email, password string }{
		{"", "pass"},
		{"a@example.com", ""},
		{"not-an-email", "pass"},
	}
	for _, tc := range cases {
		if _, err := c.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
	if client.callCount() != 0 {
		t.Fatalf("invalid credentials must not reach the service")
	}
}

func TestSessionController_LoginWhileRestoring(t *testing.T) {
	c := newController(successClient(domain.Session{Token: "t1", User: adminUser}), &stubStore{})

	if _, err := c.Login(context.Background(), "a@example.com", "pass"); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("login before restore must be busy, got %v", err)
	}
}

func TestSessionController_LoginWhenAuthenticated(t *testing.T) {
	store := &stubStore{session: &domain.Session{Token: "t1", User: adminUser}}
	c := newController(successClient(domain.Session{}), store)
	c.Restore(context.Background())

	if _, err := c.Login(context.Background(), "a@example.com", "pass"); !errors.Is(err, domain.ErrAlreadyAuthenticated) {
		t.Fatalf("expected ErrAlreadyAuthenticated, got %v", err)
	}
}

func TestSessionController_LoginSaveFailurePreventsAuthentication(t *testing.T) {
	store := &stubStore{saveErr: errors.New("disk full")}
	c := newController(successClient(domain.Session{Token: "t1", User: adminUser}), store)
	c.Restore(context.Background())

	_, err := c.Login(context.Background(), "admin@example.com", "validpass")
	if err == nil {
		t.Fatalf("expected error when save fails")
	}
	if c.State() != domain.StateUnauthenticated {
		t.Fatalf("save failure must leave the controller unauthenticated, got %s", c.State())
	}
	if _, ok := c.CurrentUser(); ok {
		t.Fatalf("no user must be active after a save failure")
	}
}

func TestSessionController_ConcurrentLoginRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &stubClient{authFn: func(context.Context, string, string) (*domain.Session, error) {
		close(entered)
		<-release
		return &domain.Session{Token: "t1", User: adminUser}, nil
	}}
	store := &stubStore{}
	c := newController(client, store)
	c.Restore(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := c.Login(context.Background(), "admin@example.com", "validpass")
		done <- err
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("first login never reached the credential service")
	}

	if _, err := c.Login(context.Background(), "admin@example.com", "validpass"); !errors.Is(err, domain.ErrBusy) {
		t.Fatalf("second login must be busy, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if store.saveCount() != 1 {
		t.Fatalf("expected exactly one save, got %d", store.saveCount())
	}
	if c.State() != domain.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", c.State())
	}
}

func TestSessionController_Logout(t *testing.T) {
	store := &stubStore{session: &domain.Session{Token: "t1", User: adminUser}}
	c := newController(successClient(domain.Session{}), store)
	c.Restore(context.Background())

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if c.State() != domain.StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", c.State())
	}
	if store.session != nil {
		t.Fatalf("persisted session must be cleared")
	}

	if err := c.Logout(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("second logout must fail with ErrNotAuthenticated, got %v", err)
	}
}

func TestSessionController_LogoutClearFailureStillLogsOut(t *testing.T) {
	store := &stubStore{
		session:  &domain.Session{Token: "t1", User: adminUser},
		clearErr: errors.New("redis gone"),
	}
	c := newController(successClient(domain.Session{}), store)
	c.Restore(context.Background())

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("logout must succeed despite clear failure, got %v", err)
	}
	if c.State() != domain.StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", c.State())
	}
}

func TestSessionController_RequestPanelUnknown(t *testing.T) {
	store := &stubStore{session: &domain.Session{Token: "t1", User: adminUser}}
	c := newController(successClient(domain.Session{}), store)
	c.Restore(context.Background())

	if _, err := c.RequestPanel("settings"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown panel must be refused, got %v", err)
	}
}

func TestSessionController_RequestPanelNotAuthenticated(t *testing.T) {
	c := newController(successClient(domain.Session{}), &stubStore{})
	c.Restore(context.Background())

	if _, err := c.RequestPanel(domain.PanelOverview); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if panels := c.VisiblePanels(); panels != nil {
		t.Fatalf("no panels must be visible when unauthenticated, got %v", panels)
	}
}

func TestSessionController_SaveFailureErrorIsWrapped(t *testing.T) {
	saveErr := errors.New("boom")
	store := &stubStore{saveErr: saveErr}
	c := newController(successClient(domain.Session{Token: "t1", User: adminUser}), store)
	c.Restore(context.Background())

	_, err := c.Login(context.Background(), "admin@example.com", "validpass")
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
	if want := fmt.Sprintf("persist session: %v", saveErr); err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
