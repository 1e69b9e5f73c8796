// Package service gates every plugin invocation: a binary only runs if
// its manifest validates, the plugin is enabled, the on-disk checksum
// still matches, and the requested command exists with the right kind.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"physiq/internal/modules/plugin/domain"
	"physiq/internal/modules/plugin/dto"
	pluginout "physiq/internal/modules/plugin/port/out"
)

type PluginService struct {
	store pluginout.ManifestStore
	host  pluginout.Host
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host) *PluginService {
	return &PluginService{store: store, host: host}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.validManifests(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		infos = append(infos, toPluginInfo(m))
	}
	return infos, nil
}

func toPluginInfo(m domain.Manifest) dto.PluginInfo {
	capabilities := make([]string, len(m.Capabilities))
	for i, c := range m.Capabilities {
		capabilities[i] = string(c)
	}
	return dto.PluginInfo{
		Name:         m.Name,
		Version:      m.Version,
		Enabled:      m.Enabled,
		Binary:       m.Binary,
		Capabilities: capabilities,
	}
}

// Doctor reports per plugin, never failing the whole run because one
// manifest is broken.
func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		results = append(results, s.diagnose(ctx, m))
	}
	return results, nil
}

func (s *PluginService) diagnose(ctx context.Context, m domain.Manifest) dto.DoctorResult {
	result := dto.DoctorResult{Name: m.Name}
	if err := m.Validate(); err != nil {
		result.Error = err.Error()
		return result
	}
	if _, err := os.Stat(m.Binary); err != nil {
		result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		return result
	}
	result.BinaryReachable = true
	if err := verifyChecksum(m.Binary, m.SHA256); err != nil {
		result.Error = "checksum mismatch"
		return result
	}
	result.ChecksumValid = true
	if !m.Enabled || s.host == nil {
		return result
	}
	if err := s.host.CheckLifecycle(ctx, m); err != nil {
		result.Error = err.Error()
		return result
	}
	result.LifecycleOK = true
	return result
}

func (s *PluginService) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	manifest, err := s.runnable(ctx, pluginName, "")
	if err != nil {
		return nil, err
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.CommandInfo, 0, len(commands))
	for _, command := range commands {
		infos = append(infos, toCommandInfo(command))
	}
	return infos, nil
}

func toCommandInfo(c domain.CommandDescriptor) dto.CommandInfo {
	return dto.CommandInfo{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Kind:            string(c.Kind),
		InputSchemaJSON: c.InputSchemaJSON,
		TimeoutMS:       c.TimeoutMS,
	}
}

func (s *PluginService) Execute(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	return s.runCommand(ctx, input, domain.CommandKindCommand)
}

func (s *PluginService) Export(ctx context.Context, input dto.ExecuteInput) (dto.ExecuteOutput, error) {
	return s.runCommand(ctx, input, domain.CommandKindExport)
}

func (s *PluginService) runCommand(ctx context.Context, input dto.ExecuteInput, kind domain.CommandKind) (dto.ExecuteOutput, error) {
	if input.InputJSON != "" && !json.Valid([]byte(input.InputJSON)) {
		return dto.ExecuteOutput{}, fmt.Errorf("input-json must be valid JSON")
	}
	req := buildRequest(input)
	if err := req.Validate(); err != nil {
		return dto.ExecuteOutput{}, err
	}

	manifest, err := s.runnable(ctx, input.PluginName, kind.RequiredCapability())
	if err != nil {
		return dto.ExecuteOutput{}, err
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return dto.ExecuteOutput{}, err
	}
	if _, err := selectCommand(commands, input.CommandID, kind); err != nil {
		return dto.ExecuteOutput{}, err
	}

	result, err := s.host.Execute(ctx, manifest, req)
	if err != nil {
		return dto.ExecuteOutput{}, err
	}
	return dto.ExecuteOutput{
		PluginName: input.PluginName,
		CommandID:  input.CommandID,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		OutputJSON: result.OutputJSON,
		ExitCode:   result.ExitCode,
	}, nil
}

func buildRequest(input dto.ExecuteInput) domain.ExecuteRequest {
	return domain.ExecuteRequest{
		CommandID: input.CommandID,
		InputJSON: input.InputJSON,
		Context: domain.ExecuteContext{
			ConfigDir:    input.ConfigDir,
			AnalysisID:   input.AnalysisID,
			AccountEmail: input.AccountEmail,
			Cwd:          input.Cwd,
			Env:          input.Env,
		},
	}
}

func (s *PluginService) validManifests(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(manifests))
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if seen[manifest.Name] {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seen[manifest.Name] = true
	}
	return manifests, nil
}

// runnable resolves a plugin that is safe to launch. An empty needs
// skips the capability check.
func (s *PluginService) runnable(ctx context.Context, pluginName string, needs domain.Capability) (domain.Manifest, error) {
	manifests, err := s.validManifests(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	idx := slices.IndexFunc(manifests, func(m domain.Manifest) bool { return m.Name == pluginName })
	if idx < 0 {
		return domain.Manifest{}, fmt.Errorf("plugin %q not found", pluginName)
	}
	manifest := manifests[idx]
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if needs != "" && !manifest.HasCapability(needs) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, needs)
	}
	if err := verifyChecksum(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func selectCommand(commands []domain.CommandDescriptor, commandID string, kind domain.CommandKind) (domain.CommandDescriptor, error) {
	for _, command := range commands {
		if err := command.Validate(); err != nil {
			return domain.CommandDescriptor{}, err
		}
		if command.ID != commandID {
			continue
		}
		if kind != "" && command.Kind != kind {
			return domain.CommandDescriptor{}, fmt.Errorf("command kind mismatch: want=%s got=%s", kind, command.Kind)
		}
		return command, nil
	}
	return domain.CommandDescriptor{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, commandID)
}

func verifyChecksum(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	digest := sha256.Sum256(payload)
	if hex.EncodeToString(digest[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}
