package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	analysisinadapter "physiq/internal/modules/analysis/adapter/in"
	analysisoutadapter "physiq/internal/modules/analysis/adapter/out"
	analysisservice "physiq/internal/modules/analysis/service"
	analysisusecase "physiq/internal/modules/analysis/usecase"
	archiveinadapter "physiq/internal/modules/archive/adapter/in"
	archiveoutadapter "physiq/internal/modules/archive/adapter/out"
	archiveservice "physiq/internal/modules/archive/service"
	archiveusecase "physiq/internal/modules/archive/usecase"
	dashboardinadapter "physiq/internal/modules/dashboard/adapter/in"
	dashboardoutadapter "physiq/internal/modules/dashboard/adapter/out"
	dashboardservice "physiq/internal/modules/dashboard/service"
	dashboardusecase "physiq/internal/modules/dashboard/usecase"
	plugininadapter "physiq/internal/modules/plugin/adapter/in"
	pluginoutadapter "physiq/internal/modules/plugin/adapter/out"
	pluginservice "physiq/internal/modules/plugin/service"
	pluginusecase "physiq/internal/modules/plugin/usecase"
	progressinadapter "physiq/internal/modules/progress/adapter/in"
	progressoutadapter "physiq/internal/modules/progress/adapter/out"
	progressservice "physiq/internal/modules/progress/service"
	progressusecase "physiq/internal/modules/progress/usecase"
	sessioninadapter "physiq/internal/modules/session/adapter/in"
	sessionoutadapter "physiq/internal/modules/session/adapter/out"
	sessionservice "physiq/internal/modules/session/service"
	sessionusecase "physiq/internal/modules/session/usecase"
	"physiq/internal/platform/clock"
	"physiq/internal/platform/config"
	"physiq/internal/platform/id"
	"physiq/internal/platform/logging"
	"physiq/internal/platform/rest"
	"physiq/internal/platform/tx"
	uiapp "physiq/internal/ui/app"
)

type App struct {
	SessionCLI   sessioninadapter.CLIHandler
	AnalysisCLI  analysisinadapter.CLIHandler
	ProgressCLI  progressinadapter.CLIHandler
	DashboardCLI dashboardinadapter.CLIHandler
	ArchiveCLI   archiveinadapter.CLIHandler
	PluginCLI    plugininadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	log, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Path:   cfg.LogPath,
	})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	// The token source doubles as the invalidator: a 401 from any
	// authenticated call clears the same store the token came from.
	sessionStore := sessionoutadapter.NewFileSessionStore(cfg.SessionPath)
	tokens := sessionoutadapter.NewStoreTokenSource(sessionStore)
	client := rest.NewClient(cfg.APIBaseURL, tokens, tokens, ids, log)

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		sessionoutadapter.NewHTTPAuthGateway(client),
		sessionStore,
	))

	analysisUC := analysisusecase.NewInteractor(analysisservice.NewAnalysisService(
		analysisoutadapter.NewHTTPAnalysisGateway(client),
	))

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		progressoutadapter.NewHTTPStatsGateway(client),
		progressoutadapter.NewAnalysisScoreAdapter(analysisUC),
	))

	dashboardUC := dashboardusecase.NewInteractor(dashboardservice.NewDashboardService(
		dashboardoutadapter.NewSessionAccountAdapter(sessionUC),
		dashboardoutadapter.NewAnalysisHistoryAdapter(analysisUC),
		dashboardoutadapter.NewProgressStatsAdapter(progressUC),
	))

	archiveStore, err := archiveoutadapter.NewSQLiteArchiveStore(cfg.ArchiveDB)
	if err != nil {
		return nil, fmt.Errorf("new archive store: %w", err)
	}
	archiveUC := archiveusecase.NewInteractor(archiveservice.NewArchiveService(
		clk,
		ids,
		archiveStore,
		archiveoutadapter.NewAnalysisSourceAdapter(analysisUC),
		archiveoutadapter.NewProgressStatsAdapter(progressUC),
		tx.NewSQLManager(archiveStore.DB()),
	))

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.Dir),
		pluginoutadapter.NewGRPCHost(),
	))

	return &App{
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		AnalysisCLI:  analysisinadapter.NewCLIHandler(analysisUC),
		ProgressCLI:  progressinadapter.NewCLIHandler(progressUC),
		DashboardCLI: dashboardinadapter.NewCLIHandler(dashboardUC),
		ArchiveCLI:   archiveinadapter.NewCLIHandler(archiveUC),
		PluginCLI:    plugininadapter.NewCLIHandler(pluginUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.SessionCLI, app.AnalysisCLI, app.DashboardCLI, app.ProgressCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
