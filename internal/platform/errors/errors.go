package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not signed in")
	ErrSessionExpired  = errors.New("session expired")
	ErrUploadInFlight  = errors.New("upload already in progress")
)
