package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const sessionFile = "session.json"

// Store persists the session across console invocations.
//
// The record is a single JSON document holding both token and user, replaced
// or removed as a whole. Writers (login, logout, the HTTP wrapper's forced
// logout on 401) never perform partial field updates, so readers can never
// observe a token without a user or vice versa.
type Store struct {
	dir string

	mu sync.Mutex
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir resolves the session/config directory: $ADCTL_CONFIG_DIR when
// set, otherwise <user-config-dir>/adctl.
func DefaultDir() (string, error) {
	if dir := os.Getenv("ADCTL_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(base, "adctl"), nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

// Write persists the session atomically: the document is written to a
// temporary file and renamed over the previous one, so a crash mid-write
// leaves either the old record or the new one, never a torn state.
func (s *Store) Write(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("refusing to persist session without token")
	}
	if sess.User.ID == "" {
		return fmt.Errorf("refusing to persist session without user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, sessionFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Read returns the stored session, or nil when no usable session exists.
//
// Missing, unparsable, or incomplete records all degrade to "logged out"
// rather than surfacing an error: a corrupted file must not wedge the client.
func (s *Store) Read() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, nil
	}
	if sess.Token == "" || sess.User.ID == "" || !sess.User.Role.Valid() {
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the stored session. Idempotent: clearing an absent or
// already-cleared session succeeds.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
