package dto

import "time"

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type SessionOutput struct {
	UserID string
	Email  string
	Name   string
}

type StatusOutput struct {
	Authenticated bool
	Email         string
	Name          string
}

type AccountOutput struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
