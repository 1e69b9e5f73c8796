package out

import (
	"context"

	"physiq/internal/modules/plugin/domain"
)

// ManifestStore surfaces the installed-plugin declarations.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs a plugin binary and speaks the rpc contract to it. Every
// method launches and tears down its own process.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListCommands(ctx context.Context, manifest domain.Manifest) ([]domain.CommandDescriptor, error)
	Execute(ctx context.Context, manifest domain.Manifest, input domain.ExecuteRequest) (domain.ExecuteResult, error)
}
