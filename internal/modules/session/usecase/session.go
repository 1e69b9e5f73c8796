package usecase

import (
	"context"
	"errors"

	"physiq/internal/modules/session/domain"
	sessiondto "physiq/internal/modules/session/dto"
	sessionin "physiq/internal/modules/session/port/in"
	"physiq/internal/modules/session/service"
	apperrors "physiq/internal/platform/errors"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return sessionOutput(session), nil
}

func (i *Interactor) Register(ctx context.Context, input sessiondto.RegisterInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.SignUp(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return sessionOutput(session), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.SignOut(ctx)
}

// Status never fails just because nobody is signed in; that is a valid state.
func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	session, err := i.svc.Current(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return sessiondto.StatusOutput{}, nil
		}
		return sessiondto.StatusOutput{}, err
	}
	return sessiondto.StatusOutput{
		Authenticated: session.Authenticated(),
		Email:         session.User.Email,
		Name:          session.User.Name,
	}, nil
}

func (i *Interactor) CurrentAccount(ctx context.Context) (sessiondto.AccountOutput, error) {
	account, err := i.svc.Account(ctx)
	if err != nil {
		return sessiondto.AccountOutput{}, err
	}
	return sessiondto.AccountOutput{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: account.CreatedAt,
	}, nil
}

func sessionOutput(session domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		UserID: session.User.ID,
		Email:  session.User.Email,
		Name:   session.User.Name,
	}
}
