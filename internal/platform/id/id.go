package id

import "github.com/google/uuid"

// Generator creates opaque identifiers for request tracing and archive rows.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
