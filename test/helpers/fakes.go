package helpers

import (
	"context"
	"errors"
	"sync"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
)

var errInsufficientCredits = errors.New("insufficient credits")

// FakeAsteroid is a minable body with a uniform mineral density
type FakeAsteroid struct {
	Resource *catalog.Resource
	Density  float64
}

func (a *FakeAsteroid) Mineral() *catalog.Resource { return a.Resource }
func (a *FakeAsteroid) MineralDensity() float64    { return a.Density }

// FakeEnvironment implements processing.Environment and power.Environment
type FakeEnvironment struct {
	Docked    bool
	Anchored  *FakeAsteroid
	Distance  float64
	Occluded  bool
	DeepSpace bool
}

func (e *FakeEnvironment) IsDocked() bool { return e.Docked }

func (e *FakeEnvironment) Asteroid() processing.Asteroid {
	if e.Anchored == nil {
		return nil
	}
	return e.Anchored
}

func (e *FakeEnvironment) SunDistance() float64 { return e.Distance }
func (e *FakeEnvironment) IsOccluded() bool     { return e.Occluded }
func (e *FakeEnvironment) IsInDeepSpace() bool  { return e.DeepSpace }

// FakeEnergy is a battery holding Energy kWh, or with NoStorage, a bus
// offering Surplus kW to processing and mining
type FakeEnergy struct {
	Energy    float64
	NoStorage bool
	Surplus   float64
}

func (e *FakeEnergy) RemainingEnergy() float64 { return e.Energy }
func (e *FakeEnergy) HasStorage() bool         { return !e.NoStorage }
func (e *FakeEnergy) BaseSurplus() float64     { return e.Surplus }

// FakeCrew reports a fixed crew count
type FakeCrew struct {
	Crew int
}

func (c *FakeCrew) AvailableCrew() int { return c.Crew }

// ForwardedToggle records a request relayed by a replica
type ForwardedToggle struct {
	GroupIndex int
	MiningRig  bool
	Active     bool
}

// RecordingForwarder captures toggles forwarded by a replica
type RecordingForwarder struct {
	mu       sync.Mutex
	Requests []ForwardedToggle
	Err      error
}

func (f *RecordingForwarder) ForwardProcessingGroupActive(ctx context.Context, groupIndex int, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, ForwardedToggle{GroupIndex: groupIndex, Active: active})
	return f.Err
}

func (f *RecordingForwarder) ForwardMiningRigActive(ctx context.Context, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, ForwardedToggle{MiningRig: true, Active: active})
	return f.Err
}

// FakeTrajectory returns a fixed maneuver list
type FakeTrajectory struct {
	Burns []propellant.Maneuver
}

func (t *FakeTrajectory) Maneuvers() []propellant.Maneuver { return t.Burns }

// FakeLoad reports fixed processing and mining power
type FakeLoad struct {
	Processing float64
	Mining     float64
}

func (l *FakeLoad) ProcessingPower() float64 { return l.Processing }
func (l *FakeLoad) MiningPower() float64     { return l.Mining }

// FakeWallet holds credits for crew paydays
type FakeWallet struct {
	Credits int64
}

func (w *FakeWallet) Balance() int64 { return w.Credits }

func (w *FakeWallet) Spend(amount int64) error {
	if amount > w.Credits {
		return errInsufficientCredits
	}
	w.Credits -= amount
	return nil
}

// RecordingNotifier captures player notifications
type RecordingNotifier struct {
	Messages []string
}

func (n *RecordingNotifier) Notify(message string) {
	n.Messages = append(n.Messages, message)
}

