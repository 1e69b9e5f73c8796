package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"physiq/internal/modules/session/adapter/out"
	"physiq/internal/modules/session/domain"
	sessionout "physiq/internal/modules/session/port/out"
	apperrors "physiq/internal/platform/errors"
	"physiq/internal/platform/id"
	"physiq/internal/platform/logging"
	"physiq/internal/platform/rest"
)

func newGatewayFixture(t *testing.T, handler http.Handler) (string, sessionout.AuthGateway) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "session.json")
	store := out.NewFileSessionStore(path)
	source := out.NewStoreTokenSource(store)
	client := rest.NewClient(server.URL, source, source, id.UUID{}, logging.Nop())
	gateway := out.NewHTTPAuthGateway(client)

	session := domain.Session{Token: "tok-1", User: domain.User{ID: "u-1", Email: "ana@example.com", Name: "Ana"}}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return path, gateway
}

func TestLoginDecodesSessionFromServer(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if body["email"] != "ana@example.com" || body["password"] != "secret" {
			t.Errorf("unexpected login body %v", body)
		}
		_, _ = io.WriteString(w, `{"token":"tok-9","user":{"id":"u-9","email":"ana@example.com","name":"Ana"}}`)
	}))
	defer server.Close()

	store := out.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	source := out.NewStoreTokenSource(store)
	gateway := out.NewHTTPAuthGateway(rest.NewClient(server.URL, source, source, id.UUID{}, logging.Nop()))

	session, err := gateway.Login(context.Background(), "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "tok-9" || session.User.Name != "Ana" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestCurrentAccountSendsBearerAndParsesJoinedDate(t *testing.T) {
	t.Parallel()
	_, gateway := newGatewayFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected stored bearer, got %q", got)
		}
		_, _ = io.WriteString(w, `{"id":"u-1","email":"ana@example.com","name":"Ana","created_at":"2026-07-01T09:30:00+00:00"}`)
	}))

	account, err := gateway.CurrentAccount(context.Background())
	if err != nil {
		t.Fatalf("current account: %v", err)
	}
	want := time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC)
	if !account.CreatedAt.Equal(want) {
		t.Fatalf("expected joined date %v, got %v", want, account.CreatedAt)
	}
}

func TestRejectedTokenClearsStoredSession(t *testing.T) {
	t.Parallel()
	path, gateway := newGatewayFixture(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Token has expired"}`)
	}))

	_, err := gateway.CurrentAccount(context.Background())
	if !errors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed after server rejected the token")
	}
}
