package out

import (
	"context"
	"errors"

	sessionout "physiq/internal/modules/session/port/out"
	apperrors "physiq/internal/platform/errors"
)

// StoreTokenSource adapts the session store to the transport layer: it hands
// out the stored token and clears the store when the server rejects it.
type StoreTokenSource struct {
	store sessionout.SessionStore
}

func NewStoreTokenSource(store sessionout.SessionStore) *StoreTokenSource {
	return &StoreTokenSource{store: store}
}

func (s *StoreTokenSource) Token(ctx context.Context) (string, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return "", nil
		}
		return "", err
	}
	return session.Token, nil
}

func (s *StoreTokenSource) Invalidate(ctx context.Context) error {
	return s.store.Clear(ctx)
}
