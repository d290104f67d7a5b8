package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"erepo/internal/api"
	"erepo/pkg/domain"
)

// Manager is the process-wide session holder. It owns the current user and
// bearer token, with the invariant that a non-nil user implies a non-empty
// token. Constructed once at boot and injected, never ambient.
type Manager struct {
	api   *api.Client
	store TokenStore

	mu        sync.RWMutex
	user      *domain.User
	token     string
	signedOut bool // sign-out hook already fired for this generation

	onSignOut func()
}

// NewManager wires a session manager to the API client: it becomes the
// client's token source, its role predicate, and its 401 hook.
func NewManager(client *api.Client, store TokenStore) *Manager {
	m := &Manager{
		api:   client,
		store: store,
	}
	client.SetTokenSource(m)
	client.SetAdminFunc(m.IsAdmin)
	client.SetUnauthorizedHook(m.Invalidate)
	return m
}

// SetSignOutHook installs the callback fired when the session is forcibly
// invalidated by a 401. It fires at most once per authenticated generation,
// no matter how many in-flight requests fail together.
func (m *Manager) SetSignOutHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSignOut = fn
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

// IsAdmin reports whether the signed-in user has the admin role.
func (m *Manager) IsAdmin() bool {
	u := m.CurrentUser()
	return u != nil && u.Role == domain.RoleAdmin
}

// IsApprovedLecturer reports whether the signed-in user is a lecturer who
// has passed the approval workflow. Lecturers are gated until approved.
func (m *Manager) IsApprovedLecturer() bool {
	u := m.CurrentUser()
	return u != nil && u.UserType == domain.TypeLecturer && u.IsApproved
}

// Init restores the session at startup: load the stored token and probe the
// profile endpoint. Probe failure is not fatal and does not clear the stored
// token; unauthenticated browsing remains valid.
func (m *Manager) Init(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load stored token: %w", err)
	}
	if token == "" {
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.signedOut = false
	m.mu.Unlock()

	user, err := m.api.Profile(ctx)
	if err != nil {
		slog.Debug("profile probe failed", "err", err)
		m.mu.Lock()
		m.user = nil
		m.mu.Unlock()
		return nil
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials for a token, persists it, and records the
// user. On failure the session stays unauthenticated and the server's
// message is returned.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	res, err := m.api.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.store.Save(res.Token); err != nil {
		return domain.User{}, fmt.Errorf("persist token: %w", err)
	}

	m.mu.Lock()
	m.token = res.Token
	user := res.User
	m.user = &user
	m.signedOut = false
	m.mu.Unlock()

	return res.User, nil
}

// Register creates an account and signs the new user in.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	res, err := m.api.Register(ctx, reg)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.store.Save(res.Token); err != nil {
		return domain.User{}, fmt.Errorf("persist token: %w", err)
	}

	m.mu.Lock()
	m.token = res.Token
	user := res.User
	m.user = &user
	m.signedOut = false
	m.mu.Unlock()

	return res.User, nil
}

// Logout clears the token and user unconditionally. Idempotent.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.signedOut = true
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	return nil
}

// Invalidate is the global 401 policy: clear token and user, then fire the
// sign-out hook exactly once per authenticated generation. Repeated calls,
// including concurrent ones from several failing requests, are harmless.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	hadSession := m.token != "" && !m.signedOut
	m.token = ""
	m.user = nil
	m.signedOut = true
	hook := m.onSignOut
	m.mu.Unlock()

	if !hadSession {
		return
	}
	if err := m.store.Clear(); err != nil {
		slog.Warn("clear stored token", "err", err)
	}
	if hook != nil {
		hook()
	}
}
