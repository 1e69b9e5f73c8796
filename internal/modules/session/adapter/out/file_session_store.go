package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"physiq/internal/modules/session/domain"
	sessionout "physiq/internal/modules/session/port/out"
	apperrors "physiq/internal/platform/errors"
)

// FileSessionStore keeps the session as a single JSON document holding the
// token and the user. The file carries the credential, hence 0600.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) sessionout.SessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Save(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load treats anything unusable — missing file, garbage payload, empty
// token — as signed out rather than an error worth crashing over.
func (s *FileSessionStore) Load(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrUnauthenticated
		}
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}
	session := domain.Session{}
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.Session{}, apperrors.ErrUnauthenticated
	}
	if !session.Authenticated() {
		return domain.Session{}, apperrors.ErrUnauthenticated
	}
	return session, nil
}

func (s *FileSessionStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
