package out

import (
	"context"

	"physiq/internal/modules/dashboard/domain"
	dashboardout "physiq/internal/modules/dashboard/port/out"
	sessionin "physiq/internal/modules/session/port/in"
)

type SessionAccountAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionAccountAdapter(sessions sessionin.Usecase) dashboardout.AccountSource {
	return &SessionAccountAdapter{sessions: sessions}
}

func (a *SessionAccountAdapter) Current(ctx context.Context) (domain.Account, error) {
	account, err := a.sessions.CurrentAccount(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	return domain.Account{
		Name:   account.Name,
		Email:  account.Email,
		Joined: account.CreatedAt,
	}, nil
}
