package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	catalogAdapter "github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/journal"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/metrics"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/persistence"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/setup"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/config"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/database"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/logging"
)

// app bundles the dependencies shared by the commands that touch storage
type app struct {
	cfg            *config.Config
	logger         *slog.Logger
	db             *gorm.DB
	catalog        *catalog.Catalog
	playerRepo     *persistence.GormPlayerRepository
	spacecraftRepo *persistence.GormSpacecraftRepository
	journal        *journal.TickJournal
	recorder       *metrics.SimulationMetricsCollector
	mediator       mediator.Mediator

	closers []io.Closer
}

// loadConfig reads the configuration and applies the --verbose flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the logger of a command and returns its closer
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	logger, closer, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, closer, nil
}

// initMetrics registers the collectors when metrics are enabled, returning
// nil collectors otherwise
func initMetrics(cfg *config.Config) (*metrics.CommandMetricsCollector, *metrics.SimulationMetricsCollector, error) {
	if !cfg.Metrics.Enabled {
		return nil, nil, nil
	}

	metrics.InitRegistry()

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	simulationCollector := metrics.NewSimulationMetricsCollector()
	if err := simulationCollector.Register(); err != nil {
		return nil, nil, fmt.Errorf("failed to register simulation metrics: %w", err)
	}
	metrics.SetGlobalCollector(simulationCollector)

	return commandCollector, simulationCollector, nil
}

// newApp loads configuration, opens the database, loads the catalog and
// builds the mediator
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	if err := a.open(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) open() error {
	cat, err := catalogAdapter.Load(a.cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	a.catalog = cat

	db, err := database.NewConnection(&a.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	a.playerRepo = persistence.NewGormPlayerRepository(db)
	a.spacecraftRepo = persistence.NewGormSpacecraftRepository(db, cat)

	commandCollector, simulationCollector, err := initMetrics(a.cfg)
	if err != nil {
		return err
	}
	a.recorder = simulationCollector

	settings := setup.SimulationSettings{
		DailyCrewCost:    a.cfg.Simulation.DailyCrewCost,
		StrictInvariants: a.cfg.Simulation.StrictInvariants,
	}
	if a.cfg.Simulation.JournalDir != "" {
		a.journal = journal.NewTickJournal(a.cfg.Simulation.JournalDir)
		a.closers = append(a.closers, a.journal)
		settings.Journal = a.journal
	}
	if simulationCollector != nil {
		settings.Recorder = simulationCollector
	}

	registry := setup.NewHandlerRegistry(a.playerRepo, a.spacecraftRepo, cat, nil, settings)
	var middlewares []mediator.Middleware
	if commandCollector != nil {
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))
	}
	m, err := registry.CreateConfiguredMediator(a.logger, middlewares...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}
	a.mediator = m

	return nil
}

// Close releases the journal, the database and the log file
func (a *app) Close() error {
	var errs []error
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
	}
	// reverse order: the log file goes last
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
