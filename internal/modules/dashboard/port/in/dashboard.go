package in

import (
	"context"

	"physiq/internal/modules/dashboard/dto"
)

type Usecase interface {
	// Load fetches the signed-in user, the analysis history, and the progress
	// stats concurrently and composes them all-or-nothing: the first failure
	// wins and no partial snapshot is ever returned.
	Load(ctx context.Context) (dto.SnapshotOutput, error)
}
