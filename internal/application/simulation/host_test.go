package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

type recordingJournal struct {
	records []simulation.TickRecord
}

func (j *recordingJournal) Record(record simulation.TickRecord) error {
	j.records = append(j.records, record)
	return nil
}

func TestHost_TogglesLandBetweenTicks(t *testing.T) {
	// Arrange
	session, _, _ := newRefinerySession(t, 1000)
	journal := &recordingJournal{}
	host, err := simulation.NewHost(session, shared.SimulationEpoch, time.Second, journal, nil)
	require.NoError(t, err)
	ctx := context.Background()

	// Act
	_, err = host.Advance()
	require.NoError(t, err)
	idle := host.State()

	require.NoError(t, host.SetProcessingGroupActive(ctx, 0, true))
	record, err := host.Advance()
	require.NoError(t, err)
	running := host.State()

	// Assert
	assert.Equal(t, 1, idle.Tick)
	assert.Equal(t, []processing.Status{processing.StatusStopped}, idle.Snapshot.Groups[0].Statuses)

	assert.Equal(t, 2, running.Tick)
	assert.True(t, running.Time.Equal(shared.SimulationEpoch.Add(2*time.Second)))
	assert.True(t, running.Snapshot.Groups[0].Active)
	assert.Equal(t, []processing.Status{processing.StatusProcessing}, running.Snapshot.Groups[0].Statuses)
	assert.InDelta(t, 1, record.ProcessedMass, 1e-9)
	assert.Len(t, journal.records, 2)
	assert.Equal(t, session.Spacecraft().Identifier.String(), running.Spacecraft)
}

func TestHost_ServeStopsWithContext(t *testing.T) {
	// Arrange
	session, _, _ := newRefinerySession(t, 1000)
	host, err := simulation.NewHost(session, shared.SimulationEpoch, time.Second, nil, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Act
	err = host.Serve(ctx, 1000)

	// Assert
	require.NoError(t, err)
	assert.Greater(t, host.State().Tick, 0)
}

func TestHost_RequiresLoadedSession(t *testing.T) {
	_, err := simulation.NewHost(simulation.NewSession(simulation.SessionOptions{}), shared.SimulationEpoch, time.Second, nil, nil)
	assert.Error(t, err)
}
