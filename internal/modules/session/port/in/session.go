package in

import (
	"context"

	"physiq/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	CurrentAccount(ctx context.Context) (dto.AccountOutput, error)
}
