package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pluginout "physiq/internal/modules/plugin/adapter/out"
	"physiq/internal/modules/plugin/domain"
)

// Compiles the real markdown-report plugin and drives every host RPC
// against it, one fresh process per call.
func TestGRPCHostRoundTrip(t *testing.T) {
	bin := compileReportPlugin(t)
	manifest := domain.Manifest{
		Name:         "markdown-report",
		Version:      "1.0.0",
		Binary:       bin.path,
		SHA256:       bin.sha,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityCommand, domain.CapabilityExport},
	}
	host := pluginout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("lifecycle and metadata", func(t *testing.T) {
		if err := host.CheckLifecycle(ctx, manifest); err != nil {
			t.Fatalf("lifecycle: %v", err)
		}
		meta, err := host.GetMetadata(ctx, manifest)
		if err != nil {
			t.Fatalf("metadata: %v", err)
		}
		if meta.Name != manifest.Name || meta.Version != manifest.Version {
			t.Fatalf("metadata does not match manifest: %+v", meta)
		}
	})

	t.Run("command listing", func(t *testing.T) {
		commands, err := host.ListCommands(ctx, manifest)
		if err != nil {
			t.Fatalf("list commands: %v", err)
		}
		byID := make(map[string]bool, len(commands))
		for _, c := range commands {
			byID[c.ID] = true
		}
		for _, want := range []string{"echo", "render", "journal"} {
			if !byID[want] {
				t.Errorf("plugin does not advertise %q", want)
			}
		}
	})

	t.Run("echo", func(t *testing.T) {
		out, err := host.Execute(ctx, manifest, domain.ExecuteRequest{
			CommandID: "echo",
			InputJSON: `{"message":"hello"}`,
			Context: domain.ExecuteContext{
				ConfigDir: t.TempDir(),
				Cwd:       t.TempDir(),
			},
		})
		if err != nil {
			t.Fatalf("execute echo: %v", err)
		}
		if out.ExitCode != 0 {
			t.Fatalf("echo exited %d, stderr: %s", out.ExitCode, out.Stderr)
		}
	})

	t.Run("render writes a report file", func(t *testing.T) {
		reportsDir := t.TempDir()
		out, err := host.Execute(ctx, manifest, domain.ExecuteRequest{
			CommandID: "render",
			InputJSON: `{"id":"a-1","progress_score":72.5,"muscle_groups":{"chest":"moderate"},"weak_areas":["lower back"],"recommendations":["add deadlift volume"],"overall_assessment":"solid"}`,
			Context: domain.ExecuteContext{
				ConfigDir:  t.TempDir(),
				AnalysisID: "a-1",
				Cwd:        reportsDir,
			},
		})
		if err != nil {
			t.Fatalf("execute render: %v", err)
		}
		if out.ExitCode != 0 {
			t.Fatalf("render exited %d, stderr: %s", out.ExitCode, out.Stderr)
		}
		report, err := os.ReadFile(filepath.Join(reportsDir, "physiq-report-a-1.md"))
		if err != nil {
			t.Fatalf("read rendered report: %v", err)
		}
		if len(report) == 0 {
			t.Fatal("rendered report is empty")
		}
	})

	t.Run("journal updates in place", func(t *testing.T) {
		journalDir := t.TempDir()
		journalCtx := domain.ExecuteContext{
			ConfigDir:    t.TempDir(),
			AnalysisID:   "a-1",
			AccountEmail: "lee@example.com",
			Cwd:          journalDir,
		}
		// Same analysis twice with different scores: the second run must
		// replace the entry, not append a duplicate.
		for _, input := range []string{
			`{"id":"a-1","analysis_date":"2026-08-01","progress_score":70.0,"weak_areas":["legs"]}`,
			`{"id":"a-1","analysis_date":"2026-08-01","progress_score":74.5,"weak_areas":["legs"]}`,
		} {
			if _, err := host.Execute(ctx, manifest, domain.ExecuteRequest{
				CommandID: "journal",
				InputJSON: input,
				Context:   journalCtx,
			}); err != nil {
				t.Fatalf("execute journal: %v", err)
			}
		}
		journal, err := os.ReadFile(filepath.Join(journalDir, "physiq-journal-lee-example-com.md"))
		if err != nil {
			t.Fatalf("read journal: %v", err)
		}
		if got := strings.Count(string(journal), "physiq:analysis:a-1:start"); got != 1 {
			t.Fatalf("want one entry block after re-run, got %d\n%s", got, journal)
		}
		if !strings.Contains(string(journal), "74.5") || strings.Contains(string(journal), "70.0") {
			t.Fatalf("entry was not replaced:\n%s", journal)
		}
	})
}

type builtPlugin struct {
	path string
	sha  string
}

func compileReportPlugin(t *testing.T) builtPlugin {
	t.Helper()
	path := filepath.Join(t.TempDir(), "markdown-report")
	build := exec.Command("go", "build", "-o", path, "./plugins/markdown-report")
	build.Dir = moduleRoot(t)
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("build plugin: %v\n%s", err, out)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read plugin binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return builtPlugin{path: path, sha: hex.EncodeToString(sum[:])}
}

// moduleRoot walks up from the test's working directory to the first
// go.mod, which is where the plugin package path is resolvable.
func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("no go.mod above the test directory")
		}
		dir = parent
	}
}
