package in

import (
	"context"

	sessiondto "physiq/internal/modules/session/dto"
	sessionin "physiq/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (sessiondto.SessionOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, email, password, name string) (sessiondto.SessionOutput, error) {
	return h.usecase.Register(ctx, sessiondto.RegisterInput{Email: email, Password: password, Name: name})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) CurrentAccount(ctx context.Context) (sessiondto.AccountOutput, error) {
	return h.usecase.CurrentAccount(ctx)
}
