package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	pluginrpc "physiq/internal/modules/plugin/adapter/out/rpc"
	"physiq/internal/modules/plugin/domain"
	pluginout "physiq/internal/modules/plugin/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	pluginStartTimeout = 3 * time.Second
	pluginCallTimeout  = 5 * time.Second
)

// GRPCHost launches a plugin binary per call, talks to it over the
// go-plugin gRPC transport, and kills the process when done. Plugins
// are short-lived by design: no pooling, no reuse.
type GRPCHost struct{}

func NewGRPCHost() pluginout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	return h.withPlugin(ctx, manifest, func(callCtx context.Context, client pluginrpc.PhysiqPluginClient) error {
		if _, err := client.GetMetadata(callCtx); err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		return nil
	})
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	var meta domain.Metadata
	err := h.withPlugin(ctx, manifest, func(callCtx context.Context, client pluginrpc.PhysiqPluginClient) error {
		raw, err := client.GetMetadata(callCtx)
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		capabilities := make([]domain.Capability, len(raw.Capabilities))
		for i, capability := range raw.Capabilities {
			capabilities[i] = domain.Capability(capability)
		}
		meta = domain.Metadata{Name: raw.Name, Version: raw.Version, Capabilities: capabilities}
		return nil
	})
	return meta, err
}

func (h *GRPCHost) ListCommands(ctx context.Context, manifest domain.Manifest) ([]domain.CommandDescriptor, error) {
	var descriptors []domain.CommandDescriptor
	err := h.withPlugin(ctx, manifest, func(callCtx context.Context, client pluginrpc.PhysiqPluginClient) error {
		response, err := client.ListCommands(callCtx)
		if err != nil {
			return fmt.Errorf("list commands: %w", err)
		}
		descriptors = make([]domain.CommandDescriptor, 0, len(response.Commands))
		for _, cmd := range response.Commands {
			descriptors = append(descriptors, domain.CommandDescriptor{
				ID:              cmd.ID,
				Title:           cmd.Title,
				Description:     cmd.Description,
				Kind:            domain.CommandKind(cmd.Kind),
				InputSchemaJSON: cmd.InputSchemaJSON,
				TimeoutMS:       int(cmd.TimeoutMS),
			})
		}
		return nil
	})
	return descriptors, err
}

func (h *GRPCHost) Execute(ctx context.Context, manifest domain.Manifest, input domain.ExecuteRequest) (domain.ExecuteResult, error) {
	var result domain.ExecuteResult
	err := h.withPlugin(ctx, manifest, func(callCtx context.Context, client pluginrpc.PhysiqPluginClient) error {
		response, err := client.Execute(callCtx, &pluginrpc.ExecuteRequest{
			CommandID: input.CommandID,
			InputJSON: input.InputJSON,
			Context: pluginrpc.ExecuteContext{
				ConfigDir:    input.Context.ConfigDir,
				AnalysisID:   input.Context.AnalysisID,
				AccountEmail: input.Context.AccountEmail,
				Cwd:          input.Context.Cwd,
				Env:          input.Context.Env,
			},
		})
		if err != nil {
			if callCtx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("%w: command %s", domain.ErrPluginTimeout, input.CommandID)
			}
			return fmt.Errorf("execute command: %w", err)
		}
		result = domain.ExecuteResult{
			Stdout:     response.Stdout,
			Stderr:     response.Stderr,
			OutputJSON: response.OutputJSON,
			ExitCode:   int(response.ExitCode),
		}
		return nil
	})
	return result, err
}

// withPlugin starts the binary, dispenses the typed client, runs fn
// under the call deadline, and tears the process down again.
func (h *GRPCHost) withPlugin(ctx context.Context, manifest domain.Manifest, fn func(context.Context, pluginrpc.PhysiqPluginClient) error) error {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     pluginStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		return fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.PhysiqPluginClient)
	if !ok {
		return fmt.Errorf("plugin rpc client type mismatch")
	}

	callCtx, cancel := callScope(ctx, pluginCallTimeout)
	defer cancel()
	return fn(callCtx, typed)
}

// callScope keeps an inherited deadline when the caller set one and
// falls back to the host default otherwise.
func callScope(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
