package bootstrap

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	libraryinadapter "lumina/internal/modules/library/adapter/in"
	libraryoutadapter "lumina/internal/modules/library/adapter/out"
	libraryin "lumina/internal/modules/library/port/in"
	libraryservice "lumina/internal/modules/library/service"
	libraryusecase "lumina/internal/modules/library/usecase"
	sessionoutadapter "lumina/internal/modules/session/adapter/out"
	sessionservice "lumina/internal/modules/session/service"
	summaryoutadapter "lumina/internal/modules/summary/adapter/out"
	summaryservice "lumina/internal/modules/summary/service"
	"lumina/internal/platform/clock"
	"lumina/internal/platform/config"
	"lumina/internal/platform/id"
	"lumina/internal/platform/logging"
	uiapp "lumina/internal/ui/app"
)

type App struct {
	LibraryCLI libraryinadapter.CLIHandler
	Library    libraryin.Usecase
	Sessions   *sessionservice.SessionService
	Summaries  *summaryservice.SummaryService
	Logger     *slog.Logger

	logCloser io.Closer
}

func New(cfg config.Config) (*App, error) {
	logger, closer, err := logging.New(cfg.LogPath)
	if err != nil {
		return nil, err
	}

	store := libraryoutadapter.NewSQLiteDocumentStore(cfg.DBPath, clock.SystemClock{}, id.UUID{})
	librarySvc := libraryservice.NewLibraryService(store, logger)
	libraryUC := libraryusecase.NewInteractor(librarySvc)

	sessionSvc := sessionservice.NewSessionService(sessionoutadapter.NewPDFRasterizer(), logger)

	summarySvc := summaryservice.NewSummaryService(
		summaryoutadapter.NewPDFTextExtractor(),
		summaryoutadapter.NewOpenAISummarizer(cfg.SummaryAPIKey, cfg.SummaryModel),
		logger,
	)

	return &App{
		LibraryCLI: libraryinadapter.NewCLIHandler(libraryUC),
		Library:    libraryUC,
		Sessions:   sessionSvc,
		Summaries:  summarySvc,
		Logger:     logger,
		logCloser:  closer,
	}, nil
}

func (a *App) Close() error {
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Library, app.Sessions, app.Summaries)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}
