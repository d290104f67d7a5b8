package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	// Missing file reads as signed out, not as an error.
	tok, err := store.Load()
	if err != nil || tok != "" {
		t.Fatalf("missing file: tok=%q err=%v", tok, err)
	}

	if err := store.Save("tok-abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file mode %o, want 600", perm)
	}

	tok, err = store.Load()
	if err != nil || tok != "tok-abc" {
		t.Fatalf("load: tok=%q err=%v", tok, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear must be idempotent: %v", err)
	}
	tok, err = store.Load()
	if err != nil || tok != "" {
		t.Fatalf("after clear: tok=%q err=%v", tok, err)
	}
}

func TestFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore("  "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "")

	tok, err := store.Load()
	if err != nil || tok != "" {
		t.Fatalf("empty store: tok=%q err=%v", tok, err)
	}

	if err := store.Save("tok-xyz"); err != nil {
		t.Fatalf("save: %v", err)
	}
	tok, err = store.Load()
	if err != nil || tok != "tok-xyz" {
		t.Fatalf("load: tok=%q err=%v", tok, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	tok, err = store.Load()
	if err != nil || tok != "" {
		t.Fatalf("after clear: tok=%q err=%v", tok, err)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "1",
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := TokenExpiry(token)
	if err != nil {
		t.Fatalf("expiry: %v", err)
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry %v, want %v", got, exp)
	}
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := TokenExpiry(token); err == nil {
		t.Fatalf("expected error for token without exp")
	}
}

func TestTokenExpiryGarbage(t *testing.T) {
	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Fatalf("expected parse error")
	}
}
