package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	ingestioninadapter "neuradocs/internal/modules/ingestion/adapter/in"
	ingestionoutadapter "neuradocs/internal/modules/ingestion/adapter/out"
	ingestionservice "neuradocs/internal/modules/ingestion/service"
	ingestionusecase "neuradocs/internal/modules/ingestion/usecase"
	queryinadapter "neuradocs/internal/modules/query/adapter/in"
	queryoutadapter "neuradocs/internal/modules/query/adapter/out"
	queryservice "neuradocs/internal/modules/query/service"
	queryusecase "neuradocs/internal/modules/query/usecase"
	sessioninadapter "neuradocs/internal/modules/session/adapter/in"
	sessiondomain "neuradocs/internal/modules/session/domain"
	sessionusecase "neuradocs/internal/modules/session/usecase"
	"neuradocs/internal/platform/backend"
	"neuradocs/internal/platform/clock"
	"neuradocs/internal/platform/config"
	"neuradocs/internal/platform/id"
	uiapp "neuradocs/internal/ui/app"
)

type App struct {
	IngestionCLI ingestioninadapter.CLIHandler
	QueryCLI     queryinadapter.CLIHandler
	SessionTUI   sessioninadapter.TUIHandler
	Config       config.Config
	Log          zerolog.Logger
}

// New wires one document context shared by both flows.
func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	client, err := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	if err != nil {
		return nil, fmt.Errorf("new backend client: %w", err)
	}

	clk := clock.SystemClock{}
	ids := id.UUID{}
	doc := sessiondomain.NewContext(clk)

	ingestionUC := ingestionusecase.NewInteractor(ingestionservice.NewIngestionService(
		doc.Ingestion(),
		ingestionoutadapter.NewLocalFileLoader(),
		ingestionoutadapter.NewHTTPExtractor(client, cfg.Backend.ExtractPath),
		clk,
		ids,
		log,
	))
	queryUC := queryusecase.NewInteractor(queryservice.NewQueryService(
		doc.Query(),
		queryoutadapter.NewHTTPAsker(client, cfg.Backend.AskPath),
		clk,
		ids,
		log,
	))
	sessionUC := sessionusecase.NewInteractor(doc)

	log.Debug().Str("backend", cfg.Backend.BaseURL).Dur("timeout", cfg.Backend.Timeout).Msg("app wired")
	return &App{
		IngestionCLI: ingestioninadapter.NewCLIHandler(ingestionUC),
		QueryCLI:     queryinadapter.NewCLIHandler(queryUC),
		SessionTUI:   sessioninadapter.NewTUIHandler(sessionUC),
		Config:       cfg,
		Log:          log,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.UI.StartDir, app.Config.Backend.BaseURL, app.IngestionCLI, app.QueryCLI, app.SessionTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
