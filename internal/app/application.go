package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Rorical/WolofBridge/internal/client"
	"github.com/Rorical/WolofBridge/internal/config"
	"github.com/Rorical/WolofBridge/internal/core"
	"github.com/Rorical/WolofBridge/internal/dispatcher"
	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *zap.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.QueryService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

// NewController wires the HTTP client for the active profile into a controller.
func NewController(cfg *config.Config, logger *zap.Logger) *core.Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	processor := client.New(cfg.GetEndpoint(), logger.Named("client"))
	return core.NewController(processor,
		core.WithLogger(logger.Named("controller")),
		core.WithPolicy(cfg.GetPolicy()),
		core.WithTimeout(cfg.GetTimeout()),
	)
}

func NewApplication(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)
	controller := NewController(cfg, logger)
	service := core.NewQueryService(controller, eb, logger.Named("service"))

	if !service.IsReady() {
		return nil, fmt.Errorf("query service bindings incomplete")
	}

	logger.Info("Application created",
		zap.String("profile", cfg.ActiveProfile),
		zap.String("endpoint", cfg.GetEndpoint()),
		zap.String("policy", string(cfg.GetPolicy())),
	)

	model := &AppModel{
		appModel:   createInitialAppModel(cfg, controller.Policy()),
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	_ = app.logger.Sync()
}

func createInitialAppModel(cfg *config.Config, policy core.RequestPolicy) models.AppModel {
	notices := []models.Notice{{Content: "-- WOLOFBRIDGE --", Type: models.Program}}

	profile := cfg.Current()
	if err := profile.Validate(); err != nil {
		notices = append(notices,
			models.Notice{Content: fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", cfg.ActiveProfile), Type: models.Program},
			models.Notice{Content: err.Error(), Type: models.Hint},
			models.Notice{Content: "Run: wolofbridge profile edit " + cfg.ActiveProfile, Type: models.Hint},
		)
	} else {
		notices = append(notices,
			models.Notice{Content: fmt.Sprintf("Active Profile: %s [OK]", cfg.ActiveProfile), Type: models.Program},
			models.Notice{Content: "Endpoint: " + profile.Endpoint + client.ProcessPath, Type: models.Hint},
		)
	}

	return models.AppModel{
		Notices:  notices,
		Query:    models.InitialUIState(),
		Status:   "Ready",
		Ready:    cfg.IsValid(),
		Resubmit: policy == core.PolicyCancelInFlight,
	}
}
