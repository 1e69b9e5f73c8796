// Command markdown-report is the reference export plugin. It receives
// one analysis as JSON and writes markdown into the working directory
// the host hands it: a standalone report per analysis, or an entry
// upserted into the account's training journal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pluginrpc "physiq/internal/modules/plugin/adapter/out/rpc"
	"physiq/internal/platform/markdown"
	"physiq/internal/platform/slug"

	"github.com/hashicorp/go-plugin"
)

type analysisPayload struct {
	ID                string            `json:"id"`
	AnalysisDate      string            `json:"analysis_date"`
	MuscleGroups      map[string]string `json:"muscle_groups"`
	WeakAreas         []string          `json:"weak_areas"`
	Recommendations   []string          `json:"recommendations"`
	OverallAssessment string            `json:"overall_assessment"`
	ProgressScore     float64           `json:"progress_score"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "markdown-report",
		Version:      "1.0.0",
		Capabilities: []string{"command", "export"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{ID: "echo", Title: "Echo", Description: "Echoes provided input", Kind: "command", TimeoutMS: 2000},
		{ID: "render", Title: "Render report", Description: "Writes a markdown report for one analysis", Kind: "export", TimeoutMS: 3000},
		{ID: "journal", Title: "Update journal", Description: "Upserts one analysis entry into the training journal", Kind: "export", TimeoutMS: 3000},
	}}, nil
}

func (s *server) Execute(_ context.Context, in *pluginrpc.ExecuteRequest) (*pluginrpc.ExecuteResponse, error) {
	switch in.CommandID {
	case "echo":
		if strings.TrimSpace(in.InputJSON) == "" {
			return &pluginrpc.ExecuteResponse{Stdout: "echo", OutputJSON: `{"echo":""}`, ExitCode: 0}, nil
		}
		return &pluginrpc.ExecuteResponse{Stdout: in.InputJSON, OutputJSON: fmt.Sprintf(`{"echo":%q}`, in.InputJSON), ExitCode: 0}, nil
	case "render":
		analysis, err := decodeAnalysis(in.InputJSON)
		if err != nil {
			return nil, err
		}
		rendered, err := renderReport(analysis, in.Context.AccountEmail)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(in.Context.Cwd, reportFilename(analysis, in.Context.AnalysisID))
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		out, _ := json.Marshal(map[string]any{"path": path, "bytes": len(rendered)})
		return &pluginrpc.ExecuteResponse{Stdout: path, OutputJSON: string(out), ExitCode: 0}, nil
	case "journal":
		analysis, err := decodeAnalysis(in.InputJSON)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(in.Context.Cwd, journalFilename(in.Context.AccountEmail))
		rendered, err := upsertJournalEntry(path, analysis, in.Context.AccountEmail)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return nil, fmt.Errorf("write journal: %w", err)
		}
		out, _ := json.Marshal(map[string]any{"path": path, "bytes": len(rendered)})
		return &pluginrpc.ExecuteResponse{Stdout: path, OutputJSON: string(out), ExitCode: 0}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

func decodeAnalysis(inputJSON string) (analysisPayload, error) {
	var analysis analysisPayload
	if err := json.Unmarshal([]byte(inputJSON), &analysis); err != nil {
		return analysisPayload{}, fmt.Errorf("decode analysis payload: %w", err)
	}
	return analysis, nil
}

func reportFilename(analysis analysisPayload, fallbackID string) string {
	id := analysis.ID
	if id == "" {
		id = fallbackID
	}
	if id == "" {
		id = "analysis"
	}
	return fmt.Sprintf("physiq-report-%s.md", id)
}

func journalFilename(accountEmail string) string {
	if strings.TrimSpace(accountEmail) == "" {
		return "physiq-journal.md"
	}
	return "physiq-journal-" + slug.Make(accountEmail) + ".md"
}

// upsertJournalEntry reads the journal at path (which may not exist
// yet), replaces this analysis' managed block, and re-renders the file.
// Everything a person wrote between blocks stays untouched.
func upsertJournalEntry(path string, analysis analysisPayload, accountEmail string) (string, error) {
	body := "# Training journal\n"
	meta := map[string]any{"journal": "physiq"}
	if accountEmail != "" {
		meta["account"] = accountEmail
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		existingMeta, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr != nil {
			return "", fmt.Errorf("read journal: %w", splitErr)
		}
		meta, body = existingMeta, existingBody
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read journal: %w", err)
	}

	key := analysis.ID
	if key == "" {
		key = "unknown"
	}
	start := fmt.Sprintf("<!-- physiq:analysis:%s:start -->", key)
	end := fmt.Sprintf("<!-- physiq:analysis:%s:end -->", key)
	body = markdown.ReplaceManagedBlock(body, start, end, journalEntry(analysis))

	return markdown.RenderFrontmatter(meta, body)
}

func journalEntry(analysis analysisPayload) string {
	var b strings.Builder
	date := analysis.AnalysisDate
	if date == "" {
		date = "undated"
	}
	fmt.Fprintf(&b, "### %s — score %.1f\n", date, analysis.ProgressScore)
	if len(analysis.WeakAreas) > 0 {
		fmt.Fprintf(&b, "\nWeak areas: %s\n", strings.Join(analysis.WeakAreas, ", "))
	}
	for _, rec := range analysis.Recommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReport(analysis analysisPayload, accountEmail string) (string, error) {
	meta := map[string]any{
		"id":    analysis.ID,
		"score": analysis.ProgressScore,
	}
	if analysis.AnalysisDate != "" {
		meta["taken"] = analysis.AnalysisDate
	}
	if accountEmail != "" {
		meta["account"] = accountEmail
	}

	var b strings.Builder
	b.WriteString("# Physique Analysis Report\n\n")
	fmt.Fprintf(&b, "**Progress score:** %.1f\n\n", analysis.ProgressScore)

	if len(analysis.MuscleGroups) > 0 {
		b.WriteString("## Muscle development\n\n")
		muscles := make([]string, 0, len(analysis.MuscleGroups))
		for muscle := range analysis.MuscleGroups {
			muscles = append(muscles, muscle)
		}
		sort.Strings(muscles)
		for _, muscle := range muscles {
			fmt.Fprintf(&b, "- %s: %s\n", muscle, analysis.MuscleGroups[muscle])
		}
		b.WriteString("\n")
	}

	if len(analysis.WeakAreas) > 0 {
		b.WriteString("## Weak areas\n\n")
		for _, area := range analysis.WeakAreas {
			fmt.Fprintf(&b, "- %s\n", area)
		}
		b.WriteString("\n")
	}

	if len(analysis.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range analysis.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	if analysis.OverallAssessment != "" {
		b.WriteString("## Assessment\n\n")
		b.WriteString(analysis.OverallAssessment)
		b.WriteString("\n")
	}

	return markdown.RenderFrontmatter(meta, b.String())
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
