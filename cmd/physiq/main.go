package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"physiq/internal/bootstrap"
	analysisdto "physiq/internal/modules/analysis/dto"
	plugindto "physiq/internal/modules/plugin/dto"
	"physiq/internal/platform/config"
	apperrors "physiq/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, apperrors.ErrUnauthenticated) || errors.Is(err, apperrors.ErrSessionExpired) {
			_, _ = fmt.Fprintln(os.Stderr, "sign in first: physiq auth login --email <you> --password <pw>")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir, apiURL string

	root := &cobra.Command{
		Use:           "physiq",
		Short:         "Physique analysis client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default: user config dir)")
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (default: http://localhost:8000/api)")

	root.AddCommand(newTUICmd(&configDir, &apiURL))
	root.AddCommand(newAuthCmd(&configDir, &apiURL))
	root.AddCommand(newUploadCmd(&configDir, &apiURL))
	root.AddCommand(newHistoryCmd(&configDir, &apiURL))
	root.AddCommand(newShowCmd(&configDir, &apiURL))
	root.AddCommand(newProgressCmd(&configDir, &apiURL))
	root.AddCommand(newDashboardCmd(&configDir, &apiURL))
	root.AddCommand(newArchiveCmd(&configDir, &apiURL))
	root.AddCommand(newPluginCmd(&configDir, &apiURL))
	return root
}

func loadApp(configDir, apiURL string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(configDir, apiURL)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func newTUICmd(configDir, apiURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run physiq terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newAuthCmd(configDir, apiURL *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Account and session commands"}

	var email, password string
	login := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", out.Name, out.Email)
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password")

	var regEmail, regPassword, regName string
	register := &cobra.Command{
		Use:   "register --email <email> --password <password> --name <name>",
		Short: "Create an account and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(regEmail) == "" || regPassword == "" || strings.TrimSpace(regName) == "" {
				return fmt.Errorf("--email, --password, and --name are required")
			}
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Register(context.Background(), regEmail, regPassword, regName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account created: %s (%s)\n", out.Name, out.Email)
			return nil
		},
	}
	register.Flags().StringVar(&regEmail, "email", "", "account email")
	register.Flags().StringVar(&regPassword, "password", "", "account password")
	register.Flags().StringVar(&regName, "name", "", "display name")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show local session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			if !out.Authenticated {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", out.Name, out.Email)
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Fetch the account from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.CurrentAccount(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nemail: %s\njoined: %s\n",
				out.ID, out.Name, out.Email, out.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}

	auth.AddCommand(login, register, logout, status, whoami)
	return auth
}

func newUploadCmd(configDir, apiURL *string) *cobra.Command {
	var save bool
	upload := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a body photo for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.AnalysisCLI.Upload(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "analysis %s  %s  score=%.1f\n",
				out.ID, out.TakenAt.Format("2006-01-02"), out.ProgressScore)
			for _, name := range sortedKeys(out.MuscleGroups) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", name, out.MuscleGroups[name])
			}
			if len(out.WeakAreas) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "weak areas: %s\n", strings.Join(out.WeakAreas, ", "))
			}
			for i, rec := range out.Recommendations {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, rec)
			}
			if strings.TrimSpace(out.OverallAssessment) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OverallAssessment)
			}
			if save {
				path := "physiq-analysis-" + out.ID + ".json"
				payload, err := json.MarshalIndent(analysisWirePayload(out), "", "  ")
				if err != nil {
					return fmt.Errorf("encode analysis: %w", err)
				}
				if err := os.WriteFile(path, payload, 0o644); err != nil {
					return fmt.Errorf("save analysis: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", path)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "view: physiq show %s\n", out.ID)
			return nil
		},
	}
	upload.Flags().BoolVar(&save, "save", false, "also write the analysis as JSON to the working directory")
	return upload
}

func newHistoryCmd(configDir, apiURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List analyses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			analyses, err := app.AnalysisCLI.History(context.Background())
			if err != nil {
				return err
			}
			if len(analyses) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no analyses yet")
				return nil
			}
			for _, a := range analyses {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\tweak areas: %d\n",
					a.ID, a.TakenAt.Format("2006-01-02"), a.ProgressScore, len(a.WeakAreas))
			}
			return nil
		},
	}
}

func newShowCmd(configDir, apiURL *string) *cobra.Command {
	var saveImage string
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one analysis in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.AnalysisCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "analysis %s  %s  score=%.1f\n",
				out.ID, out.TakenAt.Format("2006-01-02"), out.ProgressScore)
			for _, name := range sortedKeys(out.MuscleGroups) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", name, out.MuscleGroups[name])
			}
			if len(out.WeakAreas) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "weak areas: %s\n", strings.Join(out.WeakAreas, ", "))
			}
			for i, rec := range out.Recommendations {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, rec)
			}
			if strings.TrimSpace(out.OverallAssessment) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OverallAssessment)
			}
			if saveImage != "" {
				if out.ImageBase64 == "" {
					return fmt.Errorf("analysis has no image attached")
				}
				raw, err := base64.StdEncoding.DecodeString(out.ImageBase64)
				if err != nil {
					return fmt.Errorf("decode image: %w", err)
				}
				if err := os.WriteFile(saveImage, raw, 0o644); err != nil {
					return fmt.Errorf("save image: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "image saved: %s (%d bytes)\n", saveImage, len(raw))
			}
			return nil
		},
	}
	show.Flags().StringVar(&saveImage, "save-image", "", "decode the attached photo to this path")
	return show
}

func newProgressCmd(configDir, apiURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show progress stats and score trend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.ProgressCLI.Overview(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "analyses=%d streak=%d improvement=%.1f%%\n",
				out.Stats.TotalAnalyses, out.Stats.CurrentStreak, out.Stats.ImprovementPct)
			for _, name := range sortedKeys(out.Stats.MuscleDevelopment) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", name, out.Stats.MuscleDevelopment[name])
			}
			for _, point := range out.Trend {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\n", point.Date.Format("2006-01-02"), point.Score)
			}
			return nil
		},
	}
}

func newDashboardCmd(configDir, apiURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the aggregated dashboard snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.DashboardCLI.Load(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) joined=%s\n",
				out.Name, out.Email, out.Joined.Format("2006-01-02"))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "analyses=%d streak=%d improvement=%.1f%% latest=%.1f\n",
				out.TotalAnalyses, out.CurrentStreak, out.ImprovementPct, out.LatestScore)
			for _, entry := range out.Entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\tweak areas: %d\n",
					entry.ID, entry.TakenAt.Format("2006-01-02"), entry.Score, entry.WeakAreas)
			}
			return nil
		},
	}
}

func newArchiveCmd(configDir, apiURL *string) *cobra.Command {
	archive := &cobra.Command{Use: "archive", Short: "Local analysis archive"}

	archive.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Fetch history and stats into the local archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.Sync(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "archived %d analyses (snapshot %s)\n", out.ArchivedCount, out.SnapshotID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak=%d improvement=%.1f%%\n", out.CurrentStreak, out.ImprovementPct)
			return nil
		},
	})

	archive.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived analyses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.List(context.Background())
			if err != nil {
				return err
			}
			if out.LastSyncedAt.IsZero() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "archive is empty — run `physiq archive sync` first")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "last synced %s\n", out.LastSyncedAt.Format(time.RFC3339))
			for _, record := range out.Records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\tweak areas: %d\n",
					record.ID, record.TakenAt.Format("2006-01-02"), record.ProgressScore, len(record.WeakAreas))
			}
			return nil
		},
	})

	archive.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			record, err := app.ArchiveCLI.Show(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "analysis %s  %s  score=%.1f  archived=%s\n",
				record.ID, record.TakenAt.Format("2006-01-02"), record.ProgressScore, record.ArchivedAt.Format(time.RFC3339))
			for _, name := range sortedKeys(record.MuscleGroups) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", name, record.MuscleGroups[name])
			}
			if len(record.WeakAreas) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "weak areas: %s\n", strings.Join(record.WeakAreas, ", "))
			}
			for i, rec := range record.Recommendations {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, rec)
			}
			if strings.TrimSpace(record.OverallAssessment) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), record.OverallAssessment)
			}
			return nil
		},
	})

	return archive
}

func newPluginCmd(configDir, apiURL *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Plugin operations"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			plugins, err := app.PluginCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			results, err := app.PluginCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var commandPluginName string
	commandsCmd := &cobra.Command{
		Use:   "commands --plugin <name>",
		Short: "List commands exposed by a plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(commandPluginName) == "" {
				return fmt.Errorf("--plugin is required")
			}
			app, _, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			commands, err := app.PluginCLI.ListCommands(context.Background(), commandPluginName)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commands")
				return nil
			}
			for _, item := range commands {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s kind=%s timeout_ms=%d title=%q\n", item.ID, item.Kind, item.TimeoutMS, item.Title)
			}
			return nil
		},
	}
	commandsCmd.Flags().StringVar(&commandPluginName, "plugin", "", "plugin name")
	plugin.AddCommand(commandsCmd)

	var execPluginName, execCommandID, execInputJSON, execAnalysisID string
	execCmd := &cobra.Command{
		Use:   "exec --plugin <name> --command <id>",
		Short: "Execute a plugin command capability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(execPluginName) == "" || strings.TrimSpace(execCommandID) == "" {
				return fmt.Errorf("--plugin and --command are required")
			}
			if execInputJSON != "" && execAnalysisID != "" {
				return fmt.Errorf("--input-json and --analysis are mutually exclusive")
			}
			if err := validateJSONInput(execInputJSON); err != nil {
				return err
			}
			app, cfg, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			input, err := buildExecuteInput(app, cfg, execPluginName, execCommandID, execInputJSON, execAnalysisID, "")
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Execute(context.Background(), input)
			if err != nil {
				return err
			}
			printExecuteOutput(cmd, out)
			return nil
		},
	}
	execCmd.Flags().StringVar(&execPluginName, "plugin", "", "plugin name")
	execCmd.Flags().StringVar(&execCommandID, "command", "", "command id")
	execCmd.Flags().StringVar(&execInputJSON, "input-json", "", "JSON input payload")
	execCmd.Flags().StringVar(&execAnalysisID, "analysis", "", "analysis id to pass as the input payload")
	plugin.AddCommand(execCmd)

	var exportPluginName, exportCommandID, exportAnalysisID, exportOutDir string
	exportCmd := &cobra.Command{
		Use:   "export --plugin <name> --command <id> --analysis <id>",
		Short: "Run an export-capability command against an analysis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportPluginName) == "" || strings.TrimSpace(exportCommandID) == "" || strings.TrimSpace(exportAnalysisID) == "" {
				return fmt.Errorf("--plugin, --command, and --analysis are required")
			}
			app, cfg, err := loadApp(*configDir, *apiURL)
			if err != nil {
				return err
			}
			input, err := buildExecuteInput(app, cfg, exportPluginName, exportCommandID, "", exportAnalysisID, exportOutDir)
			if err != nil {
				return err
			}
			out, err := app.PluginCLI.Export(context.Background(), input)
			if err != nil {
				return err
			}
			printExecuteOutput(cmd, out)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportPluginName, "plugin", "", "plugin name")
	exportCmd.Flags().StringVar(&exportCommandID, "command", "", "command id")
	exportCmd.Flags().StringVar(&exportAnalysisID, "analysis", "", "analysis id to export")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "directory the plugin writes into (default: working directory)")
	plugin.AddCommand(exportCmd)

	return plugin
}

// buildExecuteInput assembles the host-side context for a plugin call. When an
// analysis id is given, the analysis is resolved through the regular loader
// first and handed to the plugin in its wire shape.
func buildExecuteInput(app *bootstrap.App, cfg config.Config, pluginName, commandID, inputJSON, analysisID, outDir string) (plugindto.ExecuteInput, error) {
	if analysisID != "" {
		detail, err := app.AnalysisCLI.Get(context.Background(), analysisID)
		if err != nil {
			return plugindto.ExecuteInput{}, err
		}
		payload, err := json.Marshal(analysisWirePayload(analysisdto.AnalysisOutput{
			ID:                detail.ID,
			TakenAt:           detail.TakenAt,
			MuscleGroups:      detail.MuscleGroups,
			WeakAreas:         detail.WeakAreas,
			Recommendations:   detail.Recommendations,
			OverallAssessment: detail.OverallAssessment,
			ProgressScore:     detail.ProgressScore,
		}))
		if err != nil {
			return plugindto.ExecuteInput{}, fmt.Errorf("encode analysis: %w", err)
		}
		inputJSON = string(payload)
	}

	var email string
	if status, err := app.SessionCLI.Status(context.Background()); err == nil && status.Authenticated {
		email = status.Email
	}

	cwd := outDir
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return plugindto.ExecuteInput{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	return plugindto.ExecuteInput{
		PluginName:   pluginName,
		CommandID:    commandID,
		InputJSON:    inputJSON,
		AnalysisID:   analysisID,
		AccountEmail: email,
		ConfigDir:    cfg.Dir,
		Cwd:          cwd,
	}, nil
}

func printExecuteOutput(cmd *cobra.Command, out plugindto.ExecuteOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plugin=%s command=%s exit=%d\n", out.PluginName, out.CommandID, out.ExitCode)
	if strings.TrimSpace(out.Stdout) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Stdout)
	}
	if strings.TrimSpace(out.Stderr) != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), out.Stderr)
	}
	if strings.TrimSpace(out.OutputJSON) != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.OutputJSON)
	}
}

func validateJSONInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if !json.Valid([]byte(input)) {
		return fmt.Errorf("--input-json must be valid JSON")
	}
	return nil
}

// wireAnalysis matches the server's JSON shape for one analysis, which is
// also the payload contract export plugins consume.
type wireAnalysis struct {
	ID                string            `json:"id"`
	AnalysisDate      time.Time         `json:"analysis_date"`
	MuscleGroups      map[string]string `json:"muscle_groups"`
	WeakAreas         []string          `json:"weak_areas"`
	Recommendations   []string          `json:"recommendations"`
	OverallAssessment string            `json:"overall_assessment"`
	ProgressScore     float64           `json:"progress_score"`
}

func analysisWirePayload(out analysisdto.AnalysisOutput) wireAnalysis {
	return wireAnalysis{
		ID:                out.ID,
		AnalysisDate:      out.TakenAt,
		MuscleGroups:      out.MuscleGroups,
		WeakAreas:         out.WeakAreas,
		Recommendations:   out.Recommendations,
		OverallAssessment: out.OverallAssessment,
		ProgressScore:     out.ProgressScore,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
