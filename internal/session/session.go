// Package session persists the bearer token between client runs.
// The token file is the sole client-side authorization signal: its absence
// means unauthenticated, and nothing about the token itself is validated
// locally.
package session

import (
	"os"
	"strings"
)

// DefaultTokenFile is the storage key used when no path is configured.
const DefaultTokenFile = ".tenderdesk_token"

// Store reads and writes the session token at a fixed file path.
type Store struct {
	path string
}

// NewStore returns a Store bound to path. An empty path selects
// DefaultTokenFile in the working directory.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultTokenFile
	}
	return &Store{path: path}
}

// Token returns the stored token and whether one is present.
// A missing or empty file reads as absent, never as an error.
func (s *Store) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Set writes the token, replacing any previous one.
func (s *Store) Set(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
