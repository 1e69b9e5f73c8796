package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"physiq/internal/modules/analysis/domain"
	analysisout "physiq/internal/modules/analysis/port/out"
	apperrors "physiq/internal/platform/errors"
)

type AnalysisService struct {
	gateway   analysisout.AnalysisGateway
	uploading atomic.Bool
}

func NewAnalysisService(gateway analysisout.AnalysisGateway) *AnalysisService {
	return &AnalysisService{gateway: gateway}
}

func (s *AnalysisService) History(ctx context.Context) ([]domain.Analysis, error) {
	return s.gateway.History(ctx)
}

func (s *AnalysisService) Get(ctx context.Context, id string) (domain.Analysis, error) {
	if id == "" {
		return domain.Analysis{}, fmt.Errorf("analysis id is required: %w", apperrors.ErrInvalidInput)
	}
	return s.gateway.Get(ctx, id)
}

// Upload rejects anything that does not look like an image before touching
// the network, and refuses to run concurrently with itself.
func (s *AnalysisService) Upload(ctx context.Context, path string) (domain.Analysis, error) {
	declared := domain.DeclaredMediaType(path)
	if !domain.IsImageType(declared) {
		if declared == "" {
			return domain.Analysis{}, fmt.Errorf("cannot tell what kind of file %s is: %w", filepath.Base(path), apperrors.ErrInvalidInput)
		}
		return domain.Analysis{}, fmt.Errorf("%s is %s, not an image: %w", filepath.Base(path), declared, apperrors.ErrInvalidInput)
	}
	photo, err := os.Open(path)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("cannot open %s: %w", path, apperrors.ErrInvalidInput)
	}
	defer photo.Close()

	if !s.uploading.CompareAndSwap(false, true) {
		return domain.Analysis{}, apperrors.ErrUploadInFlight
	}
	defer s.uploading.Store(false)

	return s.gateway.Upload(ctx, filepath.Base(path), declared, photo)
}

func (s *AnalysisService) Uploading() bool {
	return s.uploading.Load()
}
