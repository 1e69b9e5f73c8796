package out

import (
	"context"
	"net/http"
	"time"

	"physiq/internal/modules/session/domain"
	sessionout "physiq/internal/modules/session/port/out"
	"physiq/internal/platform/rest"
)

type HTTPAuthGateway struct {
	client *rest.Client
}

func NewHTTPAuthGateway(client *rest.Client) sessionout.AuthGateway {
	return &HTTPAuthGateway{client: client}
}

func (g *HTTPAuthGateway) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var out sessionWire
	err := g.client.Do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return domain.Session{}, err
	}
	return out.toDomain(), nil
}

func (g *HTTPAuthGateway) Register(ctx context.Context, email, password, name string) (domain.Session, error) {
	var out sessionWire
	err := g.client.Do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &out)
	if err != nil {
		return domain.Session{}, err
	}
	return out.toDomain(), nil
}

func (g *HTTPAuthGateway) CurrentAccount(ctx context.Context) (domain.Account, error) {
	var out struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}
	if err := g.client.DoAuthed(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		ID:        out.ID,
		Email:     out.Email,
		Name:      out.Name,
		CreatedAt: out.CreatedAt,
	}, nil
}

type sessionWire struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func (w sessionWire) toDomain() domain.Session {
	return domain.Session{
		Token: w.Token,
		User: domain.User{
			ID:    w.User.ID,
			Email: w.User.Email,
			Name:  w.User.Name,
		},
	}
}
