package processing

import (
	"context"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// massEpsilon is the smallest mass worth distributing, in T
const massEpsilon = 1e-9

// miningRig returns the rig of the first group that has one
func (s *System) miningRig() (*MiningRig, []spacecraft.ModuleIndices) {
	for gi := range s.groups {
		if rig := s.groups[gi].MiningRig; rig != nil {
			return rig, s.cargoSlots(s.sc.ModuleGroup(s.groups[gi].GroupIndex))
		}
	}
	return nil, nil
}

func (s *System) asteroid() Asteroid {
	if s.env == nil {
		return nil
	}
	return s.env.Asteroid()
}

// miningSlots lists the slots able to receive the mineral: empty and
// compatible, or already holding it with headroom
func (s *System) miningSlots(slots []spacecraft.ModuleIndices, mineral *catalog.Resource) []spacecraft.ModuleIndices {
	var eligible []spacecraft.ModuleIndices
	for _, slot := range slots {
		cargo := s.cargo[slot.CompartmentIndex][slot.ModuleIndex]
		module := s.sc.Module(slot.CompartmentIndex, slot.ModuleIndex)
		switch {
		case cargo.IsEmpty() && module.Accepts(mineral):
			eligible = append(eligible, slot)
		case cargo.Holds(mineral) && cargo.Headroom(s.capacity(slot)) > 0:
			eligible = append(eligible, slot)
		}
	}
	return eligible
}

func (s *System) updateMiningRig(rig *MiningRig, slots []spacecraft.ModuleIndices, dt float64, docked bool, budget *powerBudget) {
	previous := rig.Status
	defer func() {
		if rig.Status != previous {
			s.log.Debug("mining rig status changed", "group", rig.GroupIndex,
				"from", previous.String(), "to", rig.Status.String())
		}
	}()

	rig.CurrentRate = 0

	if docked {
		rig.Status = StatusDocked
		return
	}
	if !rig.Active {
		rig.Status = StatusStopped
		return
	}

	asteroid := s.asteroid()
	if asteroid == nil {
		rig.Status = StatusBlocked
		return
	}
	mineral := asteroid.Mineral()
	eligible := s.miningSlots(slots, mineral)
	if len(eligible) == 0 {
		rig.Status = StatusBlocked
		return
	}
	if !budget.admit(rig.Equipment.MiningRig.Power) {
		rig.Status = StatusPowerLoss
		return
	}

	rig.Status = StatusProcessing
	rig.CurrentRate = rig.Equipment.MiningRig.ExtractionRate * asteroid.MineralDensity()
	s.last.MinedMass += s.distribute(eligible, mineral, rig.CurrentRate*dt)
}

// distribute spreads mass evenly over the slots, round after round, until the
// mass or the headroom runs out. Returns the mass stored.
func (s *System) distribute(slots []spacecraft.ModuleIndices, mineral *catalog.Resource, mass float64) float64 {
	remaining := mass
	stored := 0.0
	open := append([]spacecraft.ModuleIndices(nil), slots...)

	for remaining > massEpsilon && len(open) > 0 {
		share := remaining / float64(len(open))
		next := open[:0]

		for _, slot := range open {
			headroom := s.cargo[slot.CompartmentIndex][slot.ModuleIndex].Headroom(s.capacity(slot))
			added := share
			if headroom < added {
				added = headroom
			}
			if added > 0 {
				s.applyCargo(slot, mineral, added)
				remaining -= added
				stored += added
			}
			if headroom > share {
				next = append(next, slot)
			}
		}
		open = next
	}

	return stored
}

// SetMiningRigActive toggles the mining rig. Activation is refused when the
// rig cannot run. Replicas forward the request.
func (s *System) SetMiningRigActive(ctx context.Context, active bool) error {
	rig, _ := s.miningRig()
	if rig == nil {
		return shared.NewDomainError("this spacecraft has no mining rig attached to a module group")
	}
	if active {
		if ok, reason := s.CanMiningRigBeActive(); !ok {
			return shared.NewDomainError(reason)
		}
	}

	if !s.opts.Authority {
		if s.opts.Forwarder == nil {
			return shared.NewNotAuthorityError("toggling the mining rig")
		}
		return s.opts.Forwarder.ForwardMiningRigActive(ctx, active)
	}

	rig.Active = active
	s.log.Debug("mining rig toggled", "group", rig.GroupIndex, "active", active)
	return nil
}

// IsMiningRigActive reports whether the rig was toggled on
func (s *System) IsMiningRigActive() bool {
	rig, _ := s.miningRig()
	return rig != nil && rig.Active
}

// MiningRigStatus returns the status of the rig, false when there is none
func (s *System) MiningRigStatus() (Status, bool) {
	rig, _ := s.miningRig()
	if rig == nil {
		return StatusStopped, false
	}
	return rig.Status, true
}

// CanMiningRigBeActive reports whether the rig could run right now, with the
// reason when it cannot
func (s *System) CanMiningRigBeActive() (bool, string) {
	rig, slots := s.miningRig()
	switch {
	case rig == nil:
		return false, "No mining rig is attached to a module group"
	case s.env != nil && s.env.IsDocked():
		return false, "Mining is not possible while docked"
	case s.asteroid() == nil:
		return false, "The spacecraft is not anchored to an asteroid"
	case len(s.miningSlots(slots, s.asteroid().Mineral())) == 0:
		return false, "No cargo space is available for the mined resource"
	case !s.newPowerBudget().check(rig.Equipment.MiningRig.Power):
		return false, "Not enough power to run the mining rig"
	default:
		return true, ""
	}
}

// GetCurrentMiningRate returns the extraction rate in T/s, 0 unless mining
func (s *System) GetCurrentMiningRate() float64 {
	rig, _ := s.miningRig()
	if rig == nil || rig.Status != StatusProcessing {
		return 0
	}
	return rig.CurrentRate
}

// MiningPower returns the power drawn by the rig in kW
func (s *System) MiningPower() float64 {
	rig, _ := s.miningRig()
	if rig == nil || rig.Status != StatusProcessing {
		return 0
	}
	return rig.Equipment.MiningRig.Power
}
