package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	analysisadapter "physiq/internal/modules/analysis/adapter/out"
	analysisservice "physiq/internal/modules/analysis/service"
	analysisusecase "physiq/internal/modules/analysis/usecase"
	dashboardadapter "physiq/internal/modules/dashboard/adapter/out"
	dashboardin "physiq/internal/modules/dashboard/port/in"
	"physiq/internal/modules/dashboard/service"
	"physiq/internal/modules/dashboard/usecase"
	progressadapter "physiq/internal/modules/progress/adapter/out"
	progressservice "physiq/internal/modules/progress/service"
	progressusecase "physiq/internal/modules/progress/usecase"
	sessionadapter "physiq/internal/modules/session/adapter/out"
	sessiondomain "physiq/internal/modules/session/domain"
	sessionservice "physiq/internal/modules/session/service"
	sessionusecase "physiq/internal/modules/session/usecase"
	apperrors "physiq/internal/platform/errors"
	"physiq/internal/platform/id"
	"physiq/internal/platform/logging"
	"physiq/internal/platform/rest"
)

// countingMux records how often each API path is hit; the dashboard loader
// runs its fetches concurrently, so access is locked.
type countingMux struct {
	mu      sync.Mutex
	hits    map[string]int
	handler http.HandlerFunc
}

func (m *countingMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	if m.hits == nil {
		m.hits = map[string]int{}
	}
	m.hits[r.URL.Path]++
	m.mu.Unlock()
	m.handler(w, r)
}

func (m *countingMux) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.hits {
		n += c
	}
	return n
}

// buildDashboard wires the real client stack — file session store, REST core,
// HTTP gateways, cross-module adapters — against a test server.
func buildDashboard(t *testing.T, serverURL string, seed bool) (dashboardin.Usecase, string) {
	t.Helper()
	sessionPath := filepath.Join(t.TempDir(), "session.json")
	store := sessionadapter.NewFileSessionStore(sessionPath)
	source := sessionadapter.NewStoreTokenSource(store)
	client := rest.NewClient(serverURL, source, source, id.UUID{}, logging.Nop())

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		sessionadapter.NewHTTPAuthGateway(client), store,
	))
	analysisUC := analysisusecase.NewInteractor(analysisservice.NewAnalysisService(
		analysisadapter.NewHTTPAnalysisGateway(client),
	))
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		progressadapter.NewHTTPStatsGateway(client),
		progressadapter.NewAnalysisScoreAdapter(analysisUC),
	))
	dashboardUC := usecase.NewInteractor(service.NewDashboardService(
		dashboardadapter.NewSessionAccountAdapter(sessionUC),
		dashboardadapter.NewAnalysisHistoryAdapter(analysisUC),
		dashboardadapter.NewProgressStatsAdapter(progressUC),
	))

	if seed {
		session := sessiondomain.Session{Token: "tok-1", User: sessiondomain.User{ID: "u-1", Email: "ana@example.com", Name: "Ana"}}
		if err := store.Save(context.Background(), session); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	return dashboardUC, sessionPath
}

func okDashboardHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			_, _ = io.WriteString(w, `{"id":"u-1","email":"ana@example.com","name":"Ana","created_at":"2026-05-01T00:00:00+00:00"}`)
		case "/analysis/history":
			_, _ = io.WriteString(w, `[
				{"id":"an-2","analysis_date":"2026-08-20T10:00:00+00:00","muscle_groups":{"arms":"strong"},"weak_areas":["core"],"progress_score":72},
				{"id":"an-1","analysis_date":"2026-08-10T10:00:00+00:00","muscle_groups":{"arms":"moderate"},"weak_areas":["core","back"],"progress_score":61}
			]`)
		case "/progress/stats":
			_, _ = io.WriteString(w, `{"total_analyses":2,"current_streak":1,"improvement_percentage":18.0,"muscle_development":{"arms":"strong"}}`)
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestDashboardLoadFetchesAllThreeEndpoints(t *testing.T) {
	t.Parallel()
	mux := &countingMux{handler: okDashboardHandler(t)}
	server := httptest.NewServer(mux)
	defer server.Close()

	uc, _ := buildDashboard(t, server.URL, true)
	snapshot, err := uc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snapshot.Name != "Ana" || snapshot.TotalAnalyses != 2 || snapshot.LatestScore != 72 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	mux.mu.Lock()
	defer mux.mu.Unlock()
	for _, path := range []string{"/auth/me", "/analysis/history", "/progress/stats"} {
		if mux.hits[path] != 1 {
			t.Fatalf("expected exactly one fetch of %s, got %d", path, mux.hits[path])
		}
	}
}

func TestDashboardWithoutTokenMakesNoRequests(t *testing.T) {
	t.Parallel()
	mux := &countingMux{handler: okDashboardHandler(t)}
	server := httptest.NewServer(mux)
	defer server.Close()

	uc, _ := buildDashboard(t, server.URL, false)
	if _, err := uc.Load(context.Background()); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if mux.total() != 0 {
		t.Fatalf("expected zero requests without a stored token, got %d", mux.total())
	}
}

func TestExpiredTokenDuringLoadClearsStoredSession(t *testing.T) {
	t.Parallel()
	ok := okDashboardHandler(t)
	mux := &countingMux{handler: func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/progress/stats" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Token has expired"}`)
			return
		}
		ok(w, r)
	}}
	server := httptest.NewServer(mux)
	defer server.Close()

	uc, sessionPath := buildDashboard(t, server.URL, true)
	_, err := uc.Load(context.Background())
	if !errors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Fatalf("an authorization failure must clear the stored session")
	}
}

func TestStatsOutageSurfacesErrorAndKeepsSession(t *testing.T) {
	t.Parallel()
	ok := okDashboardHandler(t)
	mux := &countingMux{handler: func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/progress/stats" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"detail":"stats temporarily unavailable"}`)
			return
		}
		ok(w, r)
	}}
	server := httptest.NewServer(mux)
	defer server.Close()

	uc, sessionPath := buildDashboard(t, server.URL, true)
	_, err := uc.Load(context.Background())
	if err == nil {
		t.Fatalf("expected load failure")
	}
	var reqErr *rest.RequestError
	if !errors.As(err, &reqErr) || reqErr.Detail != "stats temporarily unavailable" {
		t.Fatalf("expected the server detail to surface, got %v", err)
	}
	if errors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("an outage must not read as session expiry")
	}
	if _, statErr := os.Stat(sessionPath); statErr != nil {
		t.Fatalf("a non-auth failure must keep the stored session, got %v", statErr)
	}
}
