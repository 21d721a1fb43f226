package processing

import (
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// ChainModule is a processing module taking part in a chain
type ChainModule struct {
	spacecraft.ModuleIndices
	Module *catalog.ModuleDescription
}

// Chain is a set of interlocking processing modules simulated as one unit.
// Inputs and Outputs never share a resource.
type Chain struct {
	Status         Status
	Inputs         catalog.ResourceSet
	Outputs        catalog.ResourceSet
	ProcessingRate float64
	Modules        []ChainModule
}

// Power returns the net power of the chain members in kW, negative when producing
func (c *Chain) Power() float64 {
	power := 0.0
	for _, member := range c.Modules {
		power += member.Module.Processing.Power
	}
	return power
}

// RequiredCrew returns the crew needed to operate every member
func (c *Chain) RequiredCrew() int {
	crew := 0
	for _, member := range c.Modules {
		crew += member.Module.AttendanceCrew()
	}
	return crew
}

// Contains reports whether the module slot is a member
func (c *Chain) Contains(compartmentIndex, moduleIndex int) bool {
	for _, member := range c.Modules {
		if member.CompartmentIndex == compartmentIndex && member.ModuleIndex == moduleIndex {
			return true
		}
	}
	return false
}

// IsDegenerate reports whether every resource cancelled out during the merge
func (c *Chain) IsDegenerate() bool {
	return len(c.Inputs) == 0 && len(c.Outputs) == 0
}

// MiningRig is the state of the mining rig attached to a group
type MiningRig struct {
	spacecraft.EquipmentIndices
	GroupIndex  int
	Equipment   *catalog.EquipmentDescription
	Active      bool
	Status      Status
	CurrentRate float64
}

// GroupState is the runtime state of a module group with chains or a rig
type GroupState struct {
	GroupIndex int
	Active     bool
	Chains     []Chain
	MiningRig  *MiningRig
}

// RequiredCrew returns the crew needed by every chain of the group
func (g *GroupState) RequiredCrew() int {
	crew := 0
	for i := range g.Chains {
		crew += g.Chains[i].RequiredCrew()
	}
	return crew
}

// DeriveGroupStates builds chains and locates mining rigs for every group.
// Groups without chains nor rig are not tracked.
func DeriveGroupStates(sc *spacecraft.Spacecraft) []GroupState {
	var states []GroupState

	for _, group := range sc.ModuleGroups() {
		state := GroupState{GroupIndex: group.Index}

		for _, linked := range group.LinkedEquipments(sc) {
			equipment := sc.Equipment(linked.CompartmentIndex, linked.EquipmentIndex)
			if equipment.Is(catalog.EquipmentKindMiningRig) {
				state.MiningRig = &MiningRig{
					EquipmentIndices: linked,
					GroupIndex:       group.Index,
					Equipment:        equipment,
				}
				break
			}
		}

		var pending []ChainModule
		for _, indices := range group.Modules() {
			module := sc.Module(indices.CompartmentIndex, indices.ModuleIndex)
			if module.IsProcessing() {
				pending = append(pending, ChainModule{ModuleIndices: indices, Module: module})
			}
		}
		state.Chains = MergeChains(pending)

		if len(state.Chains) == 0 && state.MiningRig == nil {
			continue
		}
		states = append(states, state)
	}

	return states
}

// MergeChains merges modules sharing a resource into chains. Modules are
// consumed in order and the first matching chain wins.
func MergeChains(modules []ChainModule) []Chain {
	var chains []Chain

	for _, module := range modules {
		processing := module.Module.Processing
		merged := false

		for i := range chains {
			chain := &chains[i]
			if !chain.Outputs.Intersects(processing.Inputs) && !chain.Inputs.Intersects(processing.Outputs) {
				continue
			}

			inputs := chain.Inputs.Union(processing.Inputs)
			outputs := chain.Outputs.Union(processing.Outputs)
			chain.Inputs = inputs.Without(outputs)
			chain.Outputs = outputs.Without(inputs)
			if processing.ProcessingRate < chain.ProcessingRate {
				chain.ProcessingRate = processing.ProcessingRate
			}
			chain.Modules = append(chain.Modules, module)
			merged = true
			break
		}

		if !merged {
			chains = append(chains, Chain{
				Status:         StatusStopped,
				Inputs:         append(catalog.ResourceSet(nil), processing.Inputs...),
				Outputs:        append(catalog.ResourceSet(nil), processing.Outputs...),
				ProcessingRate: processing.ProcessingRate,
				Modules:        []ChainModule{module},
			})
		}
	}

	return chains
}
