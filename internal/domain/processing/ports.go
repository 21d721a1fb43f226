package processing

import (
	"context"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

// Asteroid is the body a spacecraft is anchored to while mining
type Asteroid interface {
	Mineral() *catalog.Resource

	// MineralDensity at the spacecraft's current position, in [0, 1]
	MineralDensity() float64
}

// Environment reports where the spacecraft is
type Environment interface {
	IsDocked() bool

	// Asteroid returns the anchored asteroid, nil when not anchored
	Asteroid() Asteroid
}

// EnergySource is the power collaborator
type EnergySource interface {
	// RemainingEnergy is the stored energy in kWh
	RemainingEnergy() float64

	// HasStorage is false when the spacecraft has no battery: consumers then
	// run on the instantaneous surplus only
	HasStorage() bool

	// BaseSurplus is production minus consumption in kW, processing chains
	// and the mining rig left out
	BaseSurplus() float64
}

// CrewSource is the crew collaborator
type CrewSource interface {
	AvailableCrew() int
}

// RequestForwarder sends toggles from a replica to the authority
type RequestForwarder interface {
	ForwardProcessingGroupActive(ctx context.Context, groupIndex int, active bool) error
	ForwardMiningRigActive(ctx context.Context, active bool) error
}
