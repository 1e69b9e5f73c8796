package out_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"physiq/internal/modules/session/adapter/out"
	"physiq/internal/modules/session/domain"
	apperrors "physiq/internal/platform/errors"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	store := out.NewFileSessionStore(path)

	session := domain.Session{
		Token: "tok-1",
		User:  domain.User{ID: "u-1", Email: "ana@example.com", Name: "Ana"},
	}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded != session {
		t.Fatalf("expected %+v, got %+v", session, loaded)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat session file: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("session file must be private, got mode %v", info.Mode().Perm())
		}
	}
}

func TestLoadMissingFileMeansSignedOut(t *testing.T) {
	t.Parallel()
	store := out.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	if _, err := store.Load(context.Background()); err != apperrors.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestLoadGarbageMeansSignedOut(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	store := out.NewFileSessionStore(path)
	if _, err := store.Load(context.Background()); err != apperrors.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for garbage file, got %v", err)
	}
}

func TestLoadEmptyTokenMeansSignedOut(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"","user":{"id":"u-1"}}`), 0o600); err != nil {
		t.Fatalf("write session: %v", err)
	}
	store := out.NewFileSessionStore(path)
	if _, err := store.Load(context.Background()); err != apperrors.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
}

func TestCorruptUserPayloadStillAuthenticates(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token":"tok-1","user":{}}`), 0o600); err != nil {
		t.Fatalf("write session: %v", err)
	}
	store := out.NewFileSessionStore(path)
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("a present token must authenticate regardless of user payload, got %v", err)
	}
	if loaded.Token != "tok-1" {
		t.Fatalf("expected token tok-1, got %q", loaded.Token)
	}
}

func TestClearMissingFileIsNoop(t *testing.T) {
	t.Parallel()
	store := out.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("clear with no file: %v", err)
	}
}
