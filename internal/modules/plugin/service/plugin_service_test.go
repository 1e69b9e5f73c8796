package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pluginout "physiq/internal/modules/plugin/adapter/out"
	"physiq/internal/modules/plugin/domain"
	"physiq/internal/modules/plugin/service"
)

func TestListConvertsManifests(t *testing.T) {
	t.Parallel()
	manifest := testManifest(t, "markdown-report", true, domain.CapabilityCommand, domain.CapabilityExport)
	svc := service.NewPluginService(stubStore{manifests: []domain.Manifest{manifest}}, nil)

	infos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected one plugin, got %d", len(infos))
	}
	if infos[0].Name != "markdown-report" || !infos[0].Enabled {
		t.Fatalf("unexpected info: %+v", infos[0])
	}
	if len(infos[0].Capabilities) != 2 || infos[0].Capabilities[1] != "export" {
		t.Fatalf("capabilities not converted: %v", infos[0].Capabilities)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	first := testManifest(t, "markdown-report", true, domain.CapabilityCommand)
	second := testManifest(t, "markdown-report", true, domain.CapabilityExport)
	svc := service.NewPluginService(stubStore{manifests: []domain.Manifest{first, second}}, nil)

	if _, err := svc.List(context.Background()); err == nil || !strings.Contains(err.Error(), "duplicate plugin name") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "plugins"), 0o755); err != nil {
		t.Fatalf("mkdir plugins: %v", err)
	}
	binPath := filepath.Join(tmp, "dummy-plugin")
	if err := os.WriteFile(binPath, []byte("not-a-real-plugin"), 0o755); err != nil {
		t.Fatalf("write plugin binary: %v", err)
	}
	manifests := []domain.Manifest{{
		Name:         "markdown-report",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       strings.Repeat("0", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityExport},
	}}
	raw, _ := json.Marshal(manifests)
	if err := os.WriteFile(filepath.Join(tmp, "plugins", "plugins.json"), raw, 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}

	svc := service.NewPluginService(pluginout.NewFileManifestStore(tmp), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if !results[0].BinaryReachable {
		t.Fatalf("binary exists, expected reachable")
	}
	if results[0].Error != "checksum mismatch" {
		t.Fatalf("unexpected error text: %q", results[0].Error)
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	t.Parallel()
	manifest := testManifest(t, "markdown-report", true, domain.CapabilityExport)
	if err := os.Remove(manifest.Binary); err != nil {
		t.Fatalf("remove binary: %v", err)
	}
	svc := service.NewPluginService(stubStore{manifests: []domain.Manifest{manifest}}, nil)

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if results[0].BinaryReachable || results[0].ChecksumValid {
		t.Fatalf("expected unreachable binary: %+v", results[0])
	}
	if !strings.Contains(results[0].Error, "binary does not exist") {
		t.Fatalf("unexpected error text: %q", results[0].Error)
	}
}

func TestDoctorKeepsCheckingAfterBrokenManifest(t *testing.T) {
	t.Parallel()
	broken := domain.Manifest{Name: "broken"}
	healthy := testManifest(t, "markdown-report", false, domain.CapabilityExport)
	svc := service.NewPluginService(stubStore{manifests: []domain.Manifest{broken, healthy}}, nil)

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected two results, got %d", len(results))
	}
	if results[0].Error == "" {
		t.Fatalf("expected validation error for broken manifest")
	}
	if !results[1].ChecksumValid || !results[1].BinaryReachable {
		t.Fatalf("healthy plugin misreported: %+v", results[1])
	}
	if results[1].LifecycleOK {
		t.Fatalf("lifecycle never ran for a disabled plugin")
	}
}
