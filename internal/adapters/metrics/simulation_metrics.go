package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
)

// TickRecorder receives one record per simulated tick
type TickRecorder interface {
	RecordTick(record simulation.TickRecord)
}

// SimulationMetricsCollector turns tick records into Prometheus series
// labelled by spacecraft
type SimulationMetricsCollector struct {
	ticksTotal         *prometheus.CounterVec
	simulatedSeconds   *prometheus.CounterVec
	processedMassTotal *prometheus.CounterVec
	minedMassTotal     *prometheus.CounterVec

	energy      *prometheus.GaugeVec
	production  *prometheus.GaugeVec
	consumption *prometheus.GaugeVec
	crew        *prometheus.GaugeVec
	busyCrew    *prometheus.GaugeVec
	propellant  *prometheus.GaugeVec
	miningRate  *prometheus.GaugeVec
	chains      *prometheus.GaugeVec
	cargo       *prometheus.GaugeVec
}

// NewSimulationMetricsCollector creates the collector; call Register to expose it
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
		}, []string{"spacecraft"})
	}
	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
		}, append([]string{"spacecraft"}, labels...))
	}

	return &SimulationMetricsCollector{
		ticksTotal:         counter("ticks_total", "Number of simulated ticks"),
		simulatedSeconds:   counter("simulated_seconds_total", "Simulated time covered by ticks"),
		processedMassTotal: counter("processed_mass_tonnes_total", "Mass converted by processing chains"),
		minedMassTotal:     counter("mined_mass_tonnes_total", "Mass extracted by the mining rig"),

		energy:      gauge("energy_kwh", "Energy left in storage"),
		production:  gauge("power_production_kw", "Power produced during the last tick"),
		consumption: gauge("power_consumption_kw", "Power consumed during the last tick"),
		crew:        gauge("crew", "Crew aboard"),
		busyCrew:    gauge("busy_crew", "Crew attending active processing chains"),
		propellant:  gauge("propellant_tonnes", "Propellant left"),
		miningRate:  gauge("mining_rate_tonnes_per_second", "Current mining extraction rate"),
		chains:      gauge("chains", "Processing chains by status", "status"),
		cargo:       gauge("cargo_tonnes", "Cargo held by resource", "resource"),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	return registerAll(
		c.ticksTotal, c.simulatedSeconds, c.processedMassTotal, c.minedMassTotal,
		c.energy, c.production, c.consumption, c.crew, c.busyCrew,
		c.propellant, c.miningRate, c.chains, c.cargo,
	)
}

// RecordTick implements simulation.Recorder
func (c *SimulationMetricsCollector) RecordTick(record simulation.TickRecord) {
	id := record.Spacecraft

	c.ticksTotal.WithLabelValues(id).Inc()
	c.simulatedSeconds.WithLabelValues(id).Add(record.Seconds)
	c.processedMassTotal.WithLabelValues(id).Add(record.ProcessedMass)
	c.minedMassTotal.WithLabelValues(id).Add(record.MinedMass)

	c.energy.WithLabelValues(id).Set(record.Energy)
	c.production.WithLabelValues(id).Set(record.Production)
	c.consumption.WithLabelValues(id).Set(record.Consumption)
	c.crew.WithLabelValues(id).Set(float64(record.Crew))
	c.busyCrew.WithLabelValues(id).Set(float64(record.BusyCrew))
	c.propellant.WithLabelValues(id).Set(record.Propellant)
	c.miningRate.WithLabelValues(id).Set(record.MiningRate)

	counts := record.StatusCounts()
	for _, status := range simulation.ChainStatuses() {
		c.chains.WithLabelValues(id, status).Set(float64(counts[status]))
	}

	c.cargo.DeletePartialMatch(prometheus.Labels{"spacecraft": id})
	totals := make(map[string]float64)
	for _, slot := range record.Cargo {
		totals[slot.Resource] += slot.Amount
	}
	for resource, amount := range totals {
		c.cargo.WithLabelValues(id, resource).Set(amount)
	}
}
