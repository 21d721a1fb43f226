package simulation

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
)

// Asteroid is a minable body with a uniform mineral density
type Asteroid struct {
	Resource *catalog.Resource
	Density  float64
}

func (a *Asteroid) Mineral() *catalog.Resource { return a.Resource }
func (a *Asteroid) MineralDensity() float64    { return a.Density }

// Environment is a fixed position for a whole run. It serves both the
// processing engine and the power system.
type Environment struct {
	Docked      bool
	Anchored    *Asteroid
	Distance    float64 // AU from the sun
	Occluded    bool
	InDeepSpace bool
}

// DefaultEnvironment is undocked, unanchored, at 1 AU in full sunlight
func DefaultEnvironment() *Environment {
	return &Environment{Distance: 1}
}

func (e *Environment) IsDocked() bool { return e.Docked }

func (e *Environment) Asteroid() processing.Asteroid {
	if e.Anchored == nil {
		return nil
	}
	return e.Anchored
}

func (e *Environment) SunDistance() float64 { return e.Distance }
func (e *Environment) IsOccluded() bool     { return e.Occluded }
func (e *Environment) IsInDeepSpace() bool  { return e.InDeepSpace }

// Trajectory is a fixed list of planned burns
type Trajectory []propellant.Maneuver

func (t Trajectory) Maneuvers() []propellant.Maneuver { return t }
