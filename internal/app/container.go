package app

import (
	"context"

	"github.com/wareops/opsctl/internal/application/doctor"
	"github.com/wareops/opsctl/internal/application/execute"
	"github.com/wareops/opsctl/internal/application/monitor"
	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/infrastructure/api"
	"github.com/wareops/opsctl/internal/infrastructure/config"
	"github.com/wareops/opsctl/internal/infrastructure/history"
	"github.com/wareops/opsctl/internal/infrastructure/kv"
	"github.com/wareops/opsctl/internal/infrastructure/scenario"
	"github.com/wareops/opsctl/internal/infrastructure/schema"
	"github.com/wareops/opsctl/internal/infrastructure/session"
	"github.com/wareops/opsctl/internal/pkg/logger"
	"github.com/wareops/opsctl/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	Logger         ports.Logger

	Store        ports.KeyValueStore
	HistoryStore ports.HistoryRepository
	Scenarios    ports.ScenarioRepository
	Sessions     ports.SessionStore

	Tools       ports.ToolService
	Documents   ports.DocumentService
	Chat        *api.ChatClient
	Equipment   *api.EquipmentClient
	Forecasting *api.ForecastingClient
	Training    *api.TrainingClient
	Auth        *api.AuthClient
	Versions    *api.VersionClient

	ExecuteService *execute.Service
	MonitorService *monitor.Service
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(verbose)
	store := kv.NewFileStore()
	sessions := session.NewStore(store)

	var historyStore ports.HistoryRepository
	if cfg.History.Backend == "sqlite" {
		historyStore = history.NewSQLiteStore(cfg.History.MaxEntries)
	} else {
		historyStore = history.NewStore(store, cfg.History.MaxEntries, log)
	}
	scenarios := scenario.NewStore(store, log)

	client := api.NewClient(cfg.API, sessions, log)
	tools := api.NewMCPClient(client)
	documents := api.NewDocumentClient(client)
	versions := api.NewVersionClient(client)

	executeService := execute.NewService(tools, historyStore, schema.New(), log)
	monitorService := monitor.NewService(documents, log, cfg.Monitor.PollInterval(), cfg.Monitor.WarnAfter())
	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Versions:       versions,
		Sessions:       sessions,
		Store:          store,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		Logger:         log,
		Store:          store,
		HistoryStore:   historyStore,
		Scenarios:      scenarios,
		Sessions:       sessions,
		Tools:          tools,
		Documents:      documents,
		Chat:           api.NewChatClient(client),
		Equipment:      api.NewEquipmentClient(client),
		Forecasting:    api.NewForecastingClient(client),
		Training:       api.NewTrainingClient(client),
		Auth:           api.NewAuthClient(client, sessions),
		Versions:       versions,
		ExecuteService: executeService,
		MonitorService: monitorService,
		DoctorService:  doctorService,
	}, nil
}
