// Package in declares the inbound port of the archive module.
package in

import (
	"context"

	"physiq/internal/modules/archive/dto"
)

// Usecase maintains a local, queryable copy of the account's analyses.
// The archive is written only by Sync; the live loaders never read it.
type Usecase interface {
	// Sync fetches the current history and stats from the server and
	// stores them locally in a single transaction.
	Sync(ctx context.Context) (dto.SyncOutput, error)

	// List returns every archived analysis, newest first.
	List(ctx context.Context) (dto.ListOutput, error)

	// Get returns one archived analysis by id.
	Get(ctx context.Context, id string) (dto.RecordOutput, error)
}
