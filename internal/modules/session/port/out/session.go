package out

import (
	"context"

	"physiq/internal/modules/session/domain"
)

// SessionStore is the durable credential storage. Load reports
// apperrors.ErrUnauthenticated when nothing usable is stored.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

type AuthGateway interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, email, password, name string) (domain.Session, error)
	CurrentAccount(ctx context.Context) (domain.Account, error)
}
