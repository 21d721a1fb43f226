package processing

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// GroupSnapshot is the replicated state of one group
type GroupSnapshot struct {
	GroupIndex int
	Active     bool
	Statuses   []Status
}

// MiningRigSnapshot is the replicated state of the mining rig
type MiningRigSnapshot struct {
	Active bool
	Status Status
	Rate   float64
}

// Snapshot is the derived state an authority shares with read-only replicas
type Snapshot struct {
	Cargo     [][spacecraft.MaxModuleCount]spacecraft.Cargo
	Groups    []GroupSnapshot
	MiningRig *MiningRigSnapshot
}

// Snapshot captures cargo and statuses
func (s *System) Snapshot() Snapshot {
	snapshot := Snapshot{
		Cargo: append([][spacecraft.MaxModuleCount]spacecraft.Cargo(nil), s.cargo...),
	}

	for _, group := range s.groups {
		snapshot.Groups = append(snapshot.Groups, GroupSnapshot{
			GroupIndex: group.GroupIndex,
			Active:     group.Active,
			Statuses:   s.GetProcessingGroupStatus(group.GroupIndex),
		})
	}

	if rig, _ := s.miningRig(); rig != nil {
		snapshot.MiningRig = &MiningRigSnapshot{
			Active: rig.Active,
			Status: rig.Status,
			Rate:   rig.CurrentRate,
		}
	}

	return snapshot
}

// ApplySnapshot mirrors the authority state on a replica loaded with the
// same spacecraft
func (s *System) ApplySnapshot(snapshot Snapshot) error {
	if s.opts.Authority {
		return shared.NewDomainError("the authority does not accept snapshots")
	}
	if s.sc == nil {
		return shared.NewSpacecraftError("processing system is not loaded")
	}
	if len(snapshot.Cargo) != len(s.cargo) {
		return shared.NewSpacecraftError("snapshot does not match the loaded spacecraft structure")
	}

	copy(s.cargo, snapshot.Cargo)

	for _, group := range snapshot.Groups {
		state := s.groupState(group.GroupIndex)
		if state == nil || len(state.Chains) != len(group.Statuses) {
			return shared.NewUnknownGroupError(group.GroupIndex)
		}
		state.Active = group.Active
		for i, status := range group.Statuses {
			state.Chains[i].Status = status
		}
	}

	if rig, _ := s.miningRig(); rig != nil && snapshot.MiningRig != nil {
		rig.Active = snapshot.MiningRig.Active
		rig.Status = snapshot.MiningRig.Status
		rig.CurrentRate = snapshot.MiningRig.Rate
	}
	return nil
}
