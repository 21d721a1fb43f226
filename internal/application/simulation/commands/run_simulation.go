package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// EnvironmentSpec describes where the spacecraft sits for the whole run
type EnvironmentSpec struct {
	Docked          bool
	SunDistance     float64 // AU; zero selects 1 AU
	Occluded        bool
	InDeepSpace     bool
	AsteroidMineral string // empty when not anchored
	AsteroidDensity float64
}

// RunSimulationCommand loads a spacecraft, toggles its systems, plays the
// ticks and saves the result
type RunSimulationCommand struct {
	SpacecraftID uuid.UUID
	PlayerID     *int
	PlayerName   string

	Start    time.Time // zero selects the simulation epoch
	Steps    int
	Step     time.Duration
	Realtime bool
	Speed    float64

	ActivateGroups    []int
	ActivateMiningRig bool
	Environment       EnvironmentSpec
	Maneuvers         []propellant.Maneuver

	// DryRun runs without saving the spacecraft or the player credits
	DryRun bool
}

// RunSimulationResponse summarizes the run
type RunSimulationResponse struct {
	Spacecraft    *spacecraft.Spacecraft
	Result        simulation.RunResult
	Notifications []string
	Credits       int64
}

// RunSimulationHandler handles the RunSimulation command
type RunSimulationHandler struct {
	spacecraftRepo spacecraft.Repository
	playerRepo     player.PlayerRepository
	playerResolver *common.PlayerResolver
	catalog        *catalog.Catalog
	journal        simulation.Journal
	recorder       simulation.Recorder
	dailyCrewCost  int64
	strict         bool
}

// NewRunSimulationHandler creates a new RunSimulationHandler. Journal and
// recorder may be nil.
func NewRunSimulationHandler(
	spacecraftRepo spacecraft.Repository,
	playerRepo player.PlayerRepository,
	cat *catalog.Catalog,
	journal simulation.Journal,
	recorder simulation.Recorder,
	dailyCrewCost int64,
	strictInvariants bool,
) *RunSimulationHandler {
	return &RunSimulationHandler{
		spacecraftRepo: spacecraftRepo,
		playerRepo:     playerRepo,
		playerResolver: common.NewPlayerResolver(playerRepo),
		catalog:        cat,
		journal:        journal,
		recorder:       recorder,
		dailyCrewCost:  dailyCrewCost,
		strict:         strictInvariants,
	}
}

// Build resolves the asteroid mineral and returns the run environment
func (spec EnvironmentSpec) Build(cat *catalog.Catalog) (*simulation.Environment, error) {
	env := &simulation.Environment{
		Docked:      spec.Docked,
		Distance:    spec.SunDistance,
		Occluded:    spec.Occluded,
		InDeepSpace: spec.InDeepSpace,
	}
	if env.Distance <= 0 {
		env.Distance = 1
	}
	if spec.AsteroidMineral != "" {
		mineral, err := cat.Resource(spec.AsteroidMineral)
		if err != nil {
			return nil, err
		}
		if spec.AsteroidDensity < 0 || spec.AsteroidDensity > 1 {
			return nil, fmt.Errorf("asteroid density must be within [0, 1], got %g", spec.AsteroidDensity)
		}
		env.Anchored = &simulation.Asteroid{Resource: mineral, Density: spec.AsteroidDensity}
	}
	return env, nil
}

// Handle executes the RunSimulation command
func (h *RunSimulationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunSimulationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSimulationCommand")
	}

	if cmd.SpacecraftID == uuid.Nil {
		return nil, fmt.Errorf("spacecraft_id is required")
	}

	logger := common.LoggerFromContext(ctx)

	owner, err := h.playerResolver.ResolvePlayer(ctx, cmd.PlayerID, cmd.PlayerName)
	if err != nil {
		return nil, err
	}

	sc, err := h.spacecraftRepo.FindByID(ctx, cmd.SpacecraftID, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find spacecraft: %w", err)
	}

	env, err := cmd.Environment.Build(h.catalog)
	if err != nil {
		return nil, err
	}

	notifier := simulation.NewLogNotifier(logger)
	session := simulation.NewSession(simulation.SessionOptions{
		Environment:      env,
		Wallet:           owner,
		Notifier:         notifier,
		Trajectory:       simulation.Trajectory(cmd.Maneuvers),
		DailyCrewCost:    h.dailyCrewCost,
		Authority:        true,
		StrictInvariants: h.strict,
		Logger:           logger.With("spacecraft", sc.Identifier.String()),
	})

	if err := session.Load(sc); err != nil {
		return nil, err
	}
	if err := session.Activate(ctx, cmd.ActivateGroups, cmd.ActivateMiningRig); err != nil {
		return nil, err
	}

	start := cmd.Start
	if start.IsZero() {
		start = shared.SimulationEpoch
	}

	runner := simulation.NewRunner(session, h.journal, h.recorder)
	result, runErr := runner.Run(ctx, simulation.RunOptions{
		Start:    start,
		Steps:    cmd.Steps,
		Step:     cmd.Step,
		Realtime: cmd.Realtime,
		Speed:    cmd.Speed,
	})
	if runErr != nil {
		if result.Ticks == 0 || ctx.Err() == nil {
			return nil, runErr
		}
		// cancelled mid-run: keep the ticks already played
		logger.Warn("simulation interrupted", "ticks", result.Ticks, "requested", cmd.Steps)
	}

	saved, err := session.Save()
	if err != nil {
		return nil, err
	}

	if !cmd.DryRun {
		saveCtx := context.WithoutCancel(ctx)
		if err := h.spacecraftRepo.Save(saveCtx, owner.ID, saved); err != nil {
			return nil, fmt.Errorf("failed to save spacecraft: %w", err)
		}
		if err := h.playerRepo.UpdateCredits(saveCtx, owner.ID, owner.Credits); err != nil {
			return nil, fmt.Errorf("failed to save player credits: %w", err)
		}
	}

	logger.Info("simulation finished",
		"spacecraft", saved.Identifier.String(),
		"ticks", result.Ticks,
		"processed_mass", result.ProcessedMass,
		"mined_mass", result.MinedMass,
		"saved", !cmd.DryRun)

	return &RunSimulationResponse{
		Spacecraft:    saved,
		Result:        result,
		Notifications: notifier.Messages(),
		Credits:       owner.Credits,
	}, nil
}
