package domain

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the client credential state exactly as the auth endpoints hand it
// out: the opaque bearer token plus the user it belongs to. The token is never
// inspected client-side; only the server decides whether it is still good.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Account is the server's view of the signed-in user, from /auth/me.
type Account struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
