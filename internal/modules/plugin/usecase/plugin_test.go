package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"physiq/internal/modules/plugin/domain"
	"physiq/internal/modules/plugin/dto"
	"physiq/internal/modules/plugin/service"
	"physiq/internal/modules/plugin/usecase"
)

type memoryStore []domain.Manifest

func (s memoryStore) Load(context.Context) ([]domain.Manifest, error) {
	return s, nil
}

type scriptedHost struct{}

func (scriptedHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (scriptedHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "markdown-report", Version: "1.0.0"}, nil
}

func (scriptedHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return []domain.CommandDescriptor{
		{ID: "echo", Kind: domain.CommandKindCommand, TimeoutMS: 1000},
		{ID: "render", Kind: domain.CommandKindExport, TimeoutMS: 2000},
		{ID: "journal", Kind: domain.CommandKindExport, TimeoutMS: 2000},
	}, nil
}

func (scriptedHost) Execute(context.Context, domain.Manifest, domain.ExecuteRequest) (domain.ExecuteResult, error) {
	return domain.ExecuteResult{Stdout: "ok", OutputJSON: `{"ok":true}`, ExitCode: 0}, nil
}

func installedManifest(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "markdown-report")
	payload := []byte("plugin payload")
	if err := os.WriteFile(binPath, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	digest := sha256.Sum256(payload)
	return domain.Manifest{
		Name:         "markdown-report",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(digest[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityCommand, domain.CapabilityExport},
	}
}

// End-to-end through the interactor with a scripted host: every
// inbound operation against one installed plugin.
func TestInteractorOperations(t *testing.T) {
	t.Parallel()
	manifest := installedManifest(t)
	uc := usecase.NewInteractor(service.NewPluginService(memoryStore{manifest}, scriptedHost{}))

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "markdown-report" {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 || !docs[0].LifecycleOK {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	commands, err := uc.ListCommands(context.Background(), "markdown-report")
	if err != nil {
		t.Fatalf("list commands: %v", err)
	}
	if len(commands) != 3 {
		t.Fatalf("unexpected command count: %d", len(commands))
	}

	execOut, err := uc.Execute(context.Background(), dto.ExecuteInput{
		PluginName: "markdown-report",
		CommandID:  "echo",
		ConfigDir:  t.TempDir(),
		Cwd:        t.TempDir(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if execOut.ExitCode != 0 || execOut.OutputJSON == "" {
		t.Fatalf("unexpected execute result: %+v", execOut)
	}

	exportOut, err := uc.Export(context.Background(), dto.ExecuteInput{
		PluginName: "markdown-report",
		CommandID:  "render",
		AnalysisID: "a-1",
		ConfigDir:  t.TempDir(),
		Cwd:        t.TempDir(),
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exportOut.PluginName != "markdown-report" || exportOut.CommandID != "render" {
		t.Fatalf("unexpected export result: %+v", exportOut)
	}
}
