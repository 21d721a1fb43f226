package setup

import (
	"log/slog"
	"reflect"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
	playerCommands "github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/commands"
	playerQueries "github.com/strangergwenn/AstralShipwright-sub002/internal/application/player/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	simulationCommands "github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation/commands"
	spacecraftCommands "github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/commands"
	spacecraftQueries "github.com/strangergwenn/AstralShipwright-sub002/internal/application/spacecraft/queries"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// SimulationSettings carries the run-wide options of the simulation handler
type SimulationSettings struct {
	Journal          simulation.Journal
	Recorder         simulation.Recorder
	DailyCrewCost    int64
	StrictInvariants bool
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	playerRepo     player.PlayerRepository
	spacecraftRepo spacecraft.Repository
	catalog        *catalog.Catalog
	clock          shared.Clock
	simulation     SimulationSettings
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	playerRepo player.PlayerRepository,
	spacecraftRepo spacecraft.Repository,
	cat *catalog.Catalog,
	clock shared.Clock,
	settings SimulationSettings,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		playerRepo:     playerRepo,
		spacecraftRepo: spacecraftRepo,
		catalog:        cat,
		clock:          clock,
		simulation:     settings,
	}
}

// RegisterPlayerHandlers registers the player command and query handlers
//
// This method registers:
//   - RegisterPlayerCommand → RegisterPlayerHandler
//   - GetPlayerQuery → GetPlayerHandler
func (r *HandlerRegistry) RegisterPlayerHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&playerCommands.RegisterPlayerCommand{}),
		playerCommands.NewRegisterPlayerHandler(r.playerRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&playerQueries.GetPlayerQuery{}),
		playerQueries.NewGetPlayerHandler(r.playerRepo),
	)
}

// RegisterSpacecraftHandlers registers the spacecraft design handlers
//
// This method registers:
//   - CreateSpacecraftCommand → CreateSpacecraftHandler
//   - EditSpacecraftCommand → EditSpacecraftHandler
//   - GetSpacecraftQuery → GetSpacecraftHandler
//   - ListSpacecraftQuery → ListSpacecraftHandler
func (r *HandlerRegistry) RegisterSpacecraftHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*spacecraftCommands.CreateSpacecraftCommand](m,
		spacecraftCommands.NewCreateSpacecraftHandler(r.spacecraftRepo, r.playerRepo, r.catalog, r.clock),
	); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*spacecraftCommands.EditSpacecraftCommand](m,
		spacecraftCommands.NewEditSpacecraftHandler(r.spacecraftRepo, r.playerRepo, r.catalog, r.clock),
	); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*spacecraftQueries.GetSpacecraftQuery](m,
		spacecraftQueries.NewGetSpacecraftHandler(r.spacecraftRepo, r.playerRepo),
	); err != nil {
		return err
	}

	return mediator.RegisterHandler[*spacecraftQueries.ListSpacecraftQuery](m,
		spacecraftQueries.NewListSpacecraftHandler(r.spacecraftRepo, r.playerRepo),
	)
}

// RegisterSimulationHandlers registers RunSimulationCommand
func (r *HandlerRegistry) RegisterSimulationHandlers(m mediator.Mediator) error {
	handler := simulationCommands.NewRunSimulationHandler(
		r.spacecraftRepo,
		r.playerRepo,
		r.catalog,
		r.simulation.Journal,
		r.simulation.Recorder,
		r.simulation.DailyCrewCost,
		r.simulation.StrictInvariants,
	)
	return mediator.RegisterHandler[*simulationCommands.RunSimulationCommand](m, handler)
}

// CreateConfiguredMediator creates a mediator with every handler registered.
// Middlewares run in the given order, the first one outermost. A nil logger
// skips the logging middleware.
func (r *HandlerRegistry) CreateConfiguredMediator(logger *slog.Logger, middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	if logger != nil {
		m.RegisterMiddleware(common.LoggingMiddleware(logger))
	}
	for _, middleware := range middlewares {
		m.RegisterMiddleware(middleware)
	}

	if err := r.RegisterPlayerHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterSpacecraftHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterSimulationHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
