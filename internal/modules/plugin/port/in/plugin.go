package in

import (
	"context"

	"physiq/internal/modules/plugin/dto"
)

// Usecase is the plugin module's inbound surface. Execute runs command
// capabilities; Export runs export capabilities, which may write files
// into the caller-chosen working directory.
type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error)
	Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error)
	Export(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error)
}
