package metrics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/metrics"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
)

func tickRecord(tick int, cargo ...simulation.CargoRecord) simulation.TickRecord {
	return simulation.TickRecord{
		Spacecraft:    "craft-1",
		Tick:          tick,
		Seconds:       60,
		ProcessedMass: 2,
		MinedMass:     0.5,
		Energy:        40,
		Crew:          3,
		BusyCrew:      2,
		Propellant:    120,
		Groups: []simulation.GroupRecord{
			{GroupIndex: 0, Active: true, Statuses: []string{"Processing", "Blocked"}},
			{GroupIndex: 1, Statuses: []string{"Stopped"}},
		},
		Cargo: cargo,
	}
}

func TestSimulationMetricsCollector_RecordTick(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewSimulationMetricsCollector()
	require.NoError(t, collector.Register())

	// Act
	collector.RecordTick(tickRecord(1,
		simulation.CargoRecord{Resource: "ore", Amount: 10},
		simulation.CargoRecord{Resource: "ore", Amount: 5},
		simulation.CargoRecord{Resource: "metal", Amount: 1},
	))
	collector.RecordTick(tickRecord(2, simulation.CargoRecord{Resource: "metal", Amount: 3}))

	// Assert
	expected := `
# HELP shipwright_simulation_ticks_total Number of simulated ticks
# TYPE shipwright_simulation_ticks_total counter
shipwright_simulation_ticks_total{spacecraft="craft-1"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "shipwright_simulation_ticks_total"))

	cargo := `
# HELP shipwright_simulation_cargo_tonnes Cargo held by resource
# TYPE shipwright_simulation_cargo_tonnes gauge
shipwright_simulation_cargo_tonnes{resource="metal",spacecraft="craft-1"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(cargo), "shipwright_simulation_cargo_tonnes"))

	chains := `
# HELP shipwright_simulation_chains Processing chains by status
# TYPE shipwright_simulation_chains gauge
shipwright_simulation_chains{spacecraft="craft-1",status="Blocked"} 1
shipwright_simulation_chains{spacecraft="craft-1",status="Docked"} 0
shipwright_simulation_chains{spacecraft="craft-1",status="PowerLoss"} 0
shipwright_simulation_chains{spacecraft="craft-1",status="Processing"} 1
shipwright_simulation_chains{spacecraft="craft-1",status="Stopped"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(chains), "shipwright_simulation_chains"))
}

func TestCommandMetricsCollector_WorksUnregistered(t *testing.T) {
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())

	collector.RecordCommandExecution("RunSimulationCommand", 0.2, true)
	collector.RecordCommandExecution("RunSimulationCommand", 0.1, false)
}

type pingRequest struct{}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewCommandMetricsCollector()
	require.NoError(t, collector.Register())
	middleware := metrics.PrometheusMiddleware(collector)

	ok := func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return "pong", nil }
	failing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	response, err := middleware(context.Background(), &pingRequest{}, ok)
	_, failErr := middleware(context.Background(), &pingRequest{}, failing)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", response)
	assert.Error(t, failErr)

	expected := `
# HELP shipwright_mediator_requests_total Total number of commands and queries executed by type and status
# TYPE shipwright_mediator_requests_total counter
shipwright_mediator_requests_total{request="pingRequest",status="error"} 1
shipwright_mediator_requests_total{request="pingRequest",status="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry, strings.NewReader(expected), "shipwright_mediator_requests_total"))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	middleware := metrics.PrometheusMiddleware(nil)
	response, err := middleware(context.Background(), &pingRequest{},
		func(ctx context.Context, request mediator.Request) (mediator.Response, error) { return 42, nil })

	require.NoError(t, err)
	assert.Equal(t, 42, response)
}

func TestHandler_ServesRegistry(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() { metrics.Registry = nil })
	collector := metrics.NewSimulationMetricsCollector()
	require.NoError(t, collector.Register())
	collector.RecordTick(tickRecord(1))

	// Act
	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `shipwright_simulation_propellant_tonnes{spacecraft="craft-1"} 120`)
}

func TestHandler_DisabledMetrics(t *testing.T) {
	metrics.Registry = nil

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
