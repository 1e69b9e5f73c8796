package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pluginout "physiq/internal/modules/plugin/adapter/out"
)

func writePluginsJSON(t *testing.T, base, raw string) {
	t.Helper()
	pluginsDir := filepath.Join(base, "plugins")
	if err := os.MkdirAll(pluginsDir, 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginsDir, "plugins.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
}

func TestLoadMissingFileMeansNoPlugins(t *testing.T) {
	t.Parallel()
	store := pluginout.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected no manifests, got %d", len(manifests))
	}
}

func TestLoadResolvesRelativeBinaryAgainstBase(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writePluginsJSON(t, base, `[
  {
    "name": "markdown-report",
    "version": "1.0.0",
    "binary": "plugins/markdown-report/markdown-report",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["export"]
  }
]`)

	store := pluginout.NewFileManifestStore(base)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	want := filepath.Join(base, "plugins", "markdown-report", "markdown-report")
	if manifests[0].Binary != want {
		t.Fatalf("binary = %s, want %s", manifests[0].Binary, want)
	}
}

func TestLoadKeepsAbsoluteBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writePluginsJSON(t, base, `[
  {
    "name": "markdown-report",
    "version": "1.0.0",
    "binary": "/opt/physiq/markdown-report",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["export"]
  }
]`)

	store := pluginout.NewFileManifestStore(base)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if manifests[0].Binary != "/opt/physiq/markdown-report" {
		t.Fatalf("absolute path was rewritten: %s", manifests[0].Binary)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writePluginsJSON(t, base, `[
  {
    "name": "markdown-report",
    "version": "1.0.0",
    "binary": "/opt/physiq/markdown-report",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "capabilities": ["export"],
    "unknown_field": true
  }
]`)

	store := pluginout.NewFileManifestStore(base)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
