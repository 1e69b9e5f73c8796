package rest

import "fmt"

// RequestError is a non-auth server failure. Detail carries the server's own
// message so views can show it verbatim.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}
