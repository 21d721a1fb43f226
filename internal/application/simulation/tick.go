package simulation

import (
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
)

// GroupRecord is the state of one processing group after a tick
type GroupRecord struct {
	GroupIndex int      `json:"group"`
	Active     bool     `json:"active"`
	Statuses   []string `json:"statuses"`
}

// CargoRecord is the content of one non-empty cargo slot after a tick
type CargoRecord struct {
	Compartment int     `json:"compartment"`
	Module      int     `json:"module"`
	Resource    string  `json:"resource"`
	Amount      float64 `json:"amount"`
}

// TickRecord is what a runner reports for every step
type TickRecord struct {
	Spacecraft    string        `json:"spacecraft"`
	Tick          int           `json:"tick"`
	Time          time.Time     `json:"time"`
	Seconds       float64       `json:"seconds"`
	ProcessedMass float64       `json:"processed_mass"`
	MinedMass     float64       `json:"mined_mass"`
	Energy        float64       `json:"energy"`
	Production    float64       `json:"production"`
	Consumption   float64       `json:"consumption"`
	Crew          int           `json:"crew"`
	BusyCrew      int           `json:"busy_crew"`
	Propellant    float64       `json:"propellant"`
	MiningStatus  string        `json:"mining_status,omitempty"`
	MiningRate    float64       `json:"mining_rate"`
	Groups        []GroupRecord `json:"groups"`
	Cargo         []CargoRecord `json:"cargo"`
}

// Journal persists tick records
type Journal interface {
	Record(record TickRecord) error
}

// Recorder receives tick records for metrics
type Recorder interface {
	RecordTick(record TickRecord)
}

// NewTickRecord captures the session state after a tick
func NewTickRecord(session *Session, tick int, at time.Time) TickRecord {
	stats := session.Processing.LastTick()
	record := TickRecord{
		Tick:          tick,
		Time:          at,
		Seconds:       stats.Seconds,
		ProcessedMass: stats.ProcessedMass,
		MinedMass:     stats.MinedMass,
		Energy:        session.Power.RemainingEnergy(),
		Production:    session.Power.Production(),
		Consumption:   session.Power.Consumption(),
		Crew:          session.Crew.AvailableCrew(),
		BusyCrew:      session.Processing.BusyCrew(),
		Propellant:    session.Propellant.PropellantMass(),
		MiningRate:    session.Processing.GetCurrentMiningRate(),
	}
	if sc := session.Spacecraft(); sc != nil {
		record.Spacecraft = sc.Identifier.String()
		for ci := range sc.Compartments {
			for mi := range sc.Compartments[ci].Modules {
				cargo := session.Processing.GetCargo(ci, mi)
				if cargo.IsEmpty() {
					continue
				}
				record.Cargo = append(record.Cargo, CargoRecord{
					Compartment: ci,
					Module:      mi,
					Resource:    cargo.Resource.Identifier,
					Amount:      cargo.Amount,
				})
			}
		}
	}
	if status, ok := session.Processing.MiningRigStatus(); ok {
		record.MiningStatus = status.String()
	}
	for _, group := range session.Processing.GroupStates() {
		groupRecord := GroupRecord{GroupIndex: group.GroupIndex, Active: group.Active}
		for _, status := range session.Processing.GetProcessingGroupStatus(group.GroupIndex) {
			groupRecord.Statuses = append(groupRecord.Statuses, status.String())
		}
		record.Groups = append(record.Groups, groupRecord)
	}
	return record
}

// StatusCounts counts chain statuses over every group
func (r TickRecord) StatusCounts() map[string]int {
	counts := make(map[string]int)
	for _, group := range r.Groups {
		for _, status := range group.Statuses {
			counts[status]++
		}
	}
	return counts
}

// ChainStatuses lists every status value, used to reset gauges
func ChainStatuses() []string {
	return []string{
		processing.StatusStopped.String(),
		processing.StatusProcessing.String(),
		processing.StatusBlocked.String(),
		processing.StatusPowerLoss.String(),
		processing.StatusDocked.String(),
	}
}
