package simulation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/crew"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/power"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// SessionOptions wires the collaborators of a session
type SessionOptions struct {
	Environment      *Environment
	Wallet           crew.Wallet
	Notifier         crew.Notifier
	Trajectory       propellant.TrajectorySource
	DailyCrewCost    int64
	Authority        bool
	StrictInvariants bool
	Forwarder        processing.RequestForwarder
	Logger           *slog.Logger
}

// Session runs every per-spacecraft system on the same clock. Systems are
// updated in dependency order: power, crew, propellant, then processing.
// The power balance is refreshed last so it reflects the chains admitted.
type Session struct {
	env        *Environment
	log        *slog.Logger
	Power      *power.System
	Crew       *crew.System
	Propellant *propellant.System
	Processing *processing.System

	spacecraft *spacecraft.Spacecraft
}

// NewSession creates the systems and wires them to each other
func NewSession(opts SessionOptions) *Session {
	env := opts.Environment
	if env == nil {
		env = DefaultEnvironment()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	trajectory := opts.Trajectory
	if trajectory == nil {
		trajectory = Trajectory(nil)
	}

	powerSystem := power.NewSystem(env, nil, logger.With("system", "power"))
	crewSystem := crew.NewSystem(opts.Wallet, opts.Notifier, opts.DailyCrewCost, logger.With("system", "crew"))
	processingSystem := processing.NewSystem(env, powerSystem, crewSystem, processing.Options{
		Authority:        opts.Authority,
		StrictInvariants: opts.StrictInvariants,
		Forwarder:        opts.Forwarder,
		Logger:           logger.With("system", "processing"),
	})
	powerSystem.SetLoadSource(processingSystem)

	return &Session{
		env:        env,
		log:        logger,
		Power:      powerSystem,
		Crew:       crewSystem,
		Propellant: propellant.NewSystem(trajectory),
		Processing: processingSystem,
	}
}

// Environment returns the position the session runs at
func (s *Session) Environment() *Environment {
	return s.env
}

// Spacecraft returns the loaded spacecraft, nil before Load
func (s *Session) Spacecraft() *spacecraft.Spacecraft {
	return s.spacecraft
}

// Load reads the spacecraft into every system
func (s *Session) Load(sc *spacecraft.Spacecraft) error {
	if sc == nil {
		return shared.NewSpacecraftError("cannot load a nil spacecraft")
	}
	sc.UpdateDerived()

	if err := s.Processing.Load(sc); err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	if err := s.Crew.Load(sc); err != nil {
		return fmt.Errorf("crew: %w", err)
	}
	if err := s.Propellant.Load(sc); err != nil {
		return fmt.Errorf("propellant: %w", err)
	}
	if err := s.Power.Load(sc); err != nil {
		return fmt.Errorf("power: %w", err)
	}

	s.spacecraft = sc
	return nil
}

// Update advances every system from t0 to t1
func (s *Session) Update(t0, t1 time.Time) error {
	if s.spacecraft == nil {
		return shared.NewSpacecraftError("session is not loaded")
	}
	if err := s.Power.Update(t0, t1); err != nil {
		return fmt.Errorf("power: %w", err)
	}
	if err := s.Crew.Update(t0, t1); err != nil {
		return fmt.Errorf("crew: %w", err)
	}
	if err := s.Propellant.Update(t0, t1); err != nil {
		return fmt.Errorf("propellant: %w", err)
	}
	if err := s.Processing.Update(t0, t1); err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	s.Power.Refresh()
	return nil
}

// Save writes cargo, crew and propellant back to the loaded spacecraft and
// halts production
func (s *Session) Save() (*spacecraft.Spacecraft, error) {
	if s.spacecraft == nil {
		return nil, shared.NewSpacecraftError("session is not loaded")
	}
	if err := s.Processing.Save(s.spacecraft); err != nil {
		return nil, fmt.Errorf("processing: %w", err)
	}
	if err := s.Crew.Save(s.spacecraft); err != nil {
		return nil, fmt.Errorf("crew: %w", err)
	}
	if err := s.Propellant.Save(s.spacecraft); err != nil {
		return nil, fmt.Errorf("propellant: %w", err)
	}
	return s.spacecraft, nil
}

// Activate turns on the listed processing groups and optionally the mining rig
func (s *Session) Activate(ctx context.Context, groups []int, miningRig bool) error {
	for _, group := range groups {
		if err := s.Processing.SetProcessingGroupActive(ctx, group, true); err != nil {
			return fmt.Errorf("activate group %d: %w", group, err)
		}
	}
	if miningRig {
		if err := s.Processing.SetMiningRigActive(ctx, true); err != nil {
			return fmt.Errorf("activate mining rig: %w", err)
		}
	}
	return nil
}
