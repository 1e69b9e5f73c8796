package service

import (
	"context"
	"fmt"
	"net/mail"

	"physiq/internal/modules/session/domain"
	sessionout "physiq/internal/modules/session/port/out"
	apperrors "physiq/internal/platform/errors"
)

type SessionService struct {
	gateway sessionout.AuthGateway
	store   sessionout.SessionStore
}

func NewSessionService(gateway sessionout.AuthGateway, store sessionout.SessionStore) *SessionService {
	return &SessionService{gateway: gateway, store: store}
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	if err := validateEmail(email); err != nil {
		return domain.Session{}, err
	}
	if password == "" {
		return domain.Session{}, fmt.Errorf("password is required: %w", apperrors.ErrInvalidInput)
	}
	session, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

func (s *SessionService) SignUp(ctx context.Context, email, password, name string) (domain.Session, error) {
	if err := validateEmail(email); err != nil {
		return domain.Session{}, err
	}
	if password == "" {
		return domain.Session{}, fmt.Errorf("password is required: %w", apperrors.ErrInvalidInput)
	}
	if name == "" {
		return domain.Session{}, fmt.Errorf("name is required: %w", apperrors.ErrInvalidInput)
	}
	session, err := s.gateway.Register(ctx, email, password, name)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("persist session: %w", err)
	}
	return session, nil
}

func (s *SessionService) SignOut(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *SessionService) Current(ctx context.Context) (domain.Session, error) {
	return s.store.Load(ctx)
}

func (s *SessionService) Account(ctx context.Context) (domain.Account, error) {
	return s.gateway.CurrentAccount(ctx)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", apperrors.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email %q is not valid: %w", email, apperrors.ErrInvalidInput)
	}
	return nil
}
