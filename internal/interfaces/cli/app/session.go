package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ticketdesk/ticketdesk/internal/domain/session"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

const sessionFileName = "session.json"

// SessionStore keeps the logged-in session between CLI invocations, the way
// the browser kept currentUser in localStorage.
type SessionStore struct {
	path string
}

// NewSessionStore uses path, or <user config dir>/ticketdesk/session.json
// when path is empty.
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate user config dir: %w", err)
		}
		path = filepath.Join(dir, "ticketdesk", sessionFileName)
	}
	return &SessionStore{path: path}, nil
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) Save(sess session.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load returns the saved session, or an unauthorized error when nobody is
// logged in or the session expired.
func (s *SessionStore) Load() (session.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, errors.NewUnauthorizedError("not logged in", "run 'ticketdesk user login' first")
		}
		return session.Session{}, fmt.Errorf("failed to read session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, errors.NewUnauthorizedError("session file is unreadable", "log in again")
	}

	if err := sess.Require(biztime.NowUTC()); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
