package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	adapterout "physiq/internal/modules/analysis/adapter/out"
	analysisdto "physiq/internal/modules/analysis/dto"
	"physiq/internal/modules/analysis/service"
	"physiq/internal/modules/analysis/usecase"
	apperrors "physiq/internal/platform/errors"
	"physiq/internal/platform/id"
	"physiq/internal/platform/logging"
	"physiq/internal/platform/rest"
)

type staticTokens struct{ token string }

func (s staticTokens) Token(context.Context) (string, error) { return s.token, nil }

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func TestNonImageUploadNeverHitsTheServer(t *testing.T) {
	t.Parallel()
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := rest.NewClient(server.URL, staticTokens{token: "tok"}, &countingInvalidator{}, id.UUID{}, logging.Nop())
	uc := usecase.NewInteractor(service.NewAnalysisService(adapterout.NewHTTPAnalysisGateway(client)))

	path := writePhoto(t, "meal-plan.pdf")
	if _, err := uc.Upload(context.Background(), analysisdto.UploadInput{Path: path}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("expected zero requests for a non-image upload, got %d", hits)
	}
}

func TestUploadRoundTripMapsServerResponse(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analysis/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("read multipart file field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "front.jpg" {
			t.Errorf("expected uploaded filename front.jpg, got %q", header.Filename)
		}
		_, _ = io.WriteString(w, `{
			"id": "an-7",
			"user_id": "u-1",
			"analysis_date": "2026-08-20T18:04:05.123456+00:00",
			"muscle_groups": {"chest": "moderate", "core": "weak"},
			"weak_areas": ["core"],
			"recommendations": ["Add planks"],
			"overall_assessment": "Solid base, core lags.",
			"progress_score": 66.0
		}`)
	}))
	defer server.Close()

	client := rest.NewClient(server.URL, staticTokens{token: "tok"}, &countingInvalidator{}, id.UUID{}, logging.Nop())
	uc := usecase.NewInteractor(service.NewAnalysisService(adapterout.NewHTTPAnalysisGateway(client)))

	out, err := uc.Upload(context.Background(), analysisdto.UploadInput{Path: writePhoto(t, "front.jpg")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if out.ID != "an-7" || out.ProgressScore != 66.0 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.MuscleGroups["core"] != "weak" {
		t.Fatalf("expected core rated weak, got %+v", out.MuscleGroups)
	}
	if out.TakenAt.IsZero() {
		t.Fatalf("expected analysis date parsed, got zero time")
	}
	if uc.Uploading() {
		t.Fatalf("in-flight flag must clear after success")
	}
}

func TestUploadServerFailureSurfacesDetailAndKeepsSession(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail":"Error processing image: corrupt JPEG"}`)
	}))
	defer server.Close()

	inv := &countingInvalidator{}
	client := rest.NewClient(server.URL, staticTokens{token: "tok"}, inv, id.UUID{}, logging.Nop())
	uc := usecase.NewInteractor(service.NewAnalysisService(adapterout.NewHTTPAnalysisGateway(client)))

	_, err := uc.Upload(context.Background(), analysisdto.UploadInput{Path: writePhoto(t, "front.jpg")})
	if err == nil || err.Error() != "Error processing image: corrupt JPEG" {
		t.Fatalf("expected server detail verbatim, got %v", err)
	}
	if inv.calls != 0 {
		t.Fatalf("non-auth failure must not clear the session")
	}
	if uc.Uploading() {
		t.Fatalf("in-flight flag must clear after server failure")
	}
}

func TestExpiredTokenDuringUploadInvalidatesSession(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Token has expired"}`)
	}))
	defer server.Close()

	inv := &countingInvalidator{}
	client := rest.NewClient(server.URL, staticTokens{token: "stale"}, inv, id.UUID{}, logging.Nop())
	uc := usecase.NewInteractor(service.NewAnalysisService(adapterout.NewHTTPAnalysisGateway(client)))

	_, err := uc.Upload(context.Background(), analysisdto.UploadInput{Path: writePhoto(t, "front.jpg")})
	if !errors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if inv.calls != 1 {
		t.Fatalf("expected session invalidated once, got %d", inv.calls)
	}
}
