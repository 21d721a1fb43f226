package propellant_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

func TestSystem_BurnsOnlyDuringOverlap(t *testing.T) {
	// Arrange
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Tug").Propellant(800).Build()
	rate := sc.PropulsionMetrics().PropellantRate
	trajectory := &helpers.FakeTrajectory{Burns: []propellant.Maneuver{
		{Start: shared.SimulationEpoch.Add(10 * time.Second), Duration: 20 * time.Second, ThrustFactor: 1},
		{Start: shared.SimulationEpoch.Add(100 * time.Second), Duration: 10 * time.Second, ThrustFactor: 0.5},
	}}
	system := propellant.NewSystem(trajectory)
	require.NoError(t, system.Load(sc))

	// Act: the tick covers 15 s of the first burn and none of the second
	require.NoError(t, system.Update(shared.SimulationEpoch, shared.SimulationEpoch.Add(25*time.Second)))

	// Assert
	assert.InDelta(t, 800-15*rate, system.PropellantMass(), 1e-9)

	require.NoError(t, system.Update(shared.SimulationEpoch.Add(25*time.Second), shared.SimulationEpoch.Add(200*time.Second)))
	assert.InDelta(t, 800-20*rate-5*rate, system.PropellantMass(), 1e-9)

	require.NoError(t, system.Save(sc))
	assert.InDelta(t, system.PropellantMass(), sc.PropellantMassAtLaunch, 1e-9)
}

func TestSystem_NeverBelowZero(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Tug").Propellant(1).Build()
	trajectory := &helpers.FakeTrajectory{Burns: []propellant.Maneuver{
		{Start: shared.SimulationEpoch, Duration: time.Hour, ThrustFactor: 1},
	}}
	system := propellant.NewSystem(trajectory)
	require.NoError(t, system.Load(sc))

	require.NoError(t, system.Update(shared.SimulationEpoch, shared.SimulationEpoch.Add(time.Hour)))

	assert.Zero(t, system.PropellantMass())
}

func TestSystem_RefillStopsAtCapacity(t *testing.T) {
	f := helpers.NewCatalogFixture()
	sc := f.ValidSpacecraft("Tug").Propellant(700).Build()
	system := propellant.NewSystem(nil)
	require.NoError(t, system.Load(sc))

	added := system.Refill(500)

	assert.InDelta(t, 100.0, added, 1e-9)
	assert.InDelta(t, 800.0, system.PropellantMass(), 1e-9)
	assert.NoError(t, system.Update(shared.SimulationEpoch, shared.SimulationEpoch.Add(time.Hour)))
}
