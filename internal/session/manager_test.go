package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"erepo/internal/api"
	"erepo/pkg/domain"
)

type backend struct {
	mux *http.ServeMux

	mu           sync.Mutex
	profileCode  int
	profileCalls int
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{mux: http.NewServeMux(), profileCode: http.StatusOK}
	b.mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var creds domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(domain.AuthResult{
			Token: "tok-123",
			User:  domain.User{ID: 1, Email: creds.Email, Role: domain.RoleAdmin},
		})
	})
	b.mux.HandleFunc("/api/v1/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b.mu.Lock()
		code := b.profileCode
		b.profileCalls++
		b.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer tok-123" || code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		json.NewEncoder(w).Encode(domain.User{ID: 1, Email: "a@b.c", Role: domain.RoleAdmin})
	})
	b.mux.HandleFunc("/api/v1/books", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
	})
	srv := httptest.NewServer(b.mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	_, srv := newBackend(t)
	store := NewMemoryStore()
	m := NewManager(api.New(srv.URL), store)

	user, err := m.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 1 || !m.IsAuthenticated() || !m.IsAdmin() {
		t.Fatalf("session not established: user=%+v", user)
	}
	if tok, _ := store.Load(); tok != "tok-123" {
		t.Fatalf("token not persisted, store has %q", tok)
	}
}

func TestLoginFailureLeavesSessionUnauthenticated(t *testing.T) {
	_, srv := newBackend(t)
	m := NewManager(api.New(srv.URL), NewMemoryStore())

	_, err := m.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "wrong"})
	if err == nil {
		t.Fatalf("expected login failure")
	}
	apiErr, ok := err.(*api.APIError)
	if !ok || apiErr.Message != "invalid credentials" {
		t.Fatalf("expected server message, got %v", err)
	}
	if m.IsAuthenticated() || m.Token() != "" {
		t.Fatalf("failed login must not establish a session")
	}
}

func TestInitRestoresStoredSession(t *testing.T) {
	_, srv := newBackend(t)
	store := NewMemoryStore()
	if err := store.Save("tok-123"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	m := NewManager(api.New(srv.URL), store)

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if u := m.CurrentUser(); u == nil || u.ID != 1 {
		t.Fatalf("expected restored user, got %+v", u)
	}
}

func TestInitProbeFailureKeepsStoredToken(t *testing.T) {
	b, srv := newBackend(t)
	b.profileCode = http.StatusUnauthorized
	store := NewMemoryStore()
	store.Save("tok-123")
	m := NewManager(api.New(srv.URL), store)

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("probe failure must not be fatal: %v", err)
	}
	if m.IsAuthenticated() {
		t.Fatalf("user must stay nil after failed probe")
	}
	// The stored token survives; only an explicit sign-out clears it.
	if tok, _ := store.Load(); tok != "tok-123" {
		t.Fatalf("stored token cleared by probe failure, have %q", tok)
	}
	if m.Token() != "tok-123" {
		t.Fatalf("in-memory token cleared by probe failure")
	}
}

func TestInvalidateFiresHookOncePerGeneration(t *testing.T) {
	_, srv := newBackend(t)
	store := NewMemoryStore()
	client := api.New(srv.URL)
	m := NewManager(client, store)
	var fired atomic.Int64
	m.SetSignOutHook(func() { fired.Add(1) })

	if _, err := m.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Several requests fail with 401 at once; the hook must fire once.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.ListBooks(context.Background(), domain.SearchParams{})
		}()
	}
	wg.Wait()

	if got := fired.Load(); got != 1 {
		t.Fatalf("sign-out hook fired %d times, want 1", got)
	}
	if m.IsAuthenticated() || m.Token() != "" {
		t.Fatalf("session must be cleared after invalidation")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("stored token must be cleared, have %q", tok)
	}

	// A fresh sign-in starts a new generation; the hook may fire again.
	if _, err := m.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("re-login: %v", err)
	}
	m.Invalidate()
	if got := fired.Load(); got != 2 {
		t.Fatalf("hook fired %d times after second generation, want 2", got)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	_, srv := newBackend(t)
	store := NewMemoryStore()
	m := NewManager(api.New(srv.URL), store)
	if _, err := m.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if m.IsAuthenticated() || m.Token() != "" {
		t.Fatalf("logout did not clear the session")
	}
}

func TestCurrentUserReturnsCopy(t *testing.T) {
	_, srv := newBackend(t)
	m := NewManager(api.New(srv.URL), NewMemoryStore())
	if _, err := m.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	u := m.CurrentUser()
	u.Email = "mutated@example.com"
	if m.CurrentUser().Email == "mutated@example.com" {
		t.Fatalf("CurrentUser must return a copy")
	}
}
