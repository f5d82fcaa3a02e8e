package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestToken_FileMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "token"))
	if token, ok := store.Token(); ok {
		t.Errorf("expected no token, got %q", token)
	}
}

func TestSetAndToken(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Set("abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	token, ok := store.Token()
	if !ok || token != "abc123" {
		t.Errorf("Token() = %q, %v; want abc123, true", token, ok)
	}
}

func TestToken_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewStore(path)
	if _, ok := store.Token(); ok {
		t.Error("expected blank token file to read as absent")
	}
}

func TestClear(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Set("abc123"); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("token still present after Clear")
	}
	// Clearing twice must not error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
