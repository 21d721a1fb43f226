package processing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// Options configures a processing system
type Options struct {
	// Authority marks the single owner allowed to run Update
	Authority bool

	// StrictInvariants panics on cargo invariant violations instead of
	// clamping and logging
	StrictInvariants bool

	// Forwarder relays toggles from a replica to the authority
	Forwarder RequestForwarder

	Logger *slog.Logger
}

// TickStats summarizes the mass moved by the last Update
type TickStats struct {
	ProcessedMass float64
	MinedMass     float64
	Seconds       float64
}

// System runs processing chains and the mining rig of one spacecraft
type System struct {
	opts   Options
	log    *slog.Logger
	env    Environment
	energy EnergySource
	crew   CrewSource

	sc       *spacecraft.Spacecraft
	cargo    [][spacecraft.MaxModuleCount]spacecraft.Cargo
	groups   []GroupState
	busyCrew int
	last     TickStats
}

// NewSystem creates a processing system. Nil collaborators mean: not docked
// and not anchored, unlimited energy, unlimited crew.
func NewSystem(env Environment, energy EnergySource, crew CrewSource, opts Options) *System {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &System{
		opts:   opts,
		log:    logger,
		env:    env,
		energy: energy,
		crew:   crew,
	}
}

// IsAuthority reports whether this system owns the simulation
func (s *System) IsAuthority() bool {
	return s.opts.Authority
}

// Load rebuilds the runtime state from a persisted spacecraft whose derived
// data is up to date
func (s *System) Load(sc *spacecraft.Spacecraft) error {
	if sc == nil {
		return shared.NewSpacecraftError("cannot load a nil spacecraft")
	}

	s.sc = sc.Clone()
	s.cargo = make([][spacecraft.MaxModuleCount]spacecraft.Cargo, len(sc.Compartments))
	for ci := range sc.Compartments {
		for mi := 0; mi < spacecraft.MaxModuleCount; mi++ {
			s.cargo[ci][mi] = sc.Compartments[ci].Modules[mi].Cargo
		}
	}
	s.groups = DeriveGroupStates(s.sc)
	s.busyCrew = 0
	s.last = TickStats{}

	chains := 0
	for _, group := range s.groups {
		chains += len(group.Chains)
	}
	s.log.Debug("processing system loaded",
		"spacecraft", sc.Identifier.String(),
		"groups", len(s.groups),
		"chains", chains)
	return nil
}

// Save writes the runtime cargo back to the spacecraft and halts production
func (s *System) Save(sc *spacecraft.Spacecraft) error {
	if s.sc == nil {
		return shared.NewSpacecraftError("processing system is not loaded")
	}
	if len(sc.Compartments) != len(s.cargo) {
		return shared.NewSpacecraftError(fmt.Sprintf(
			"spacecraft has %d compartments, processing state has %d", len(sc.Compartments), len(s.cargo)))
	}

	for ci := range s.cargo {
		for mi := 0; mi < spacecraft.MaxModuleCount; mi++ {
			sc.Compartments[ci].Modules[mi].Cargo = s.cargo[ci][mi]
		}
	}

	for gi := range s.groups {
		s.groups[gi].Active = false
		if rig := s.groups[gi].MiningRig; rig != nil {
			rig.Active = false
		}
	}
	return nil
}

// Update advances the simulation from t0 to t1. Only the authority may call it.
// An empty or negative interval changes nothing.
func (s *System) Update(t0, t1 time.Time) error {
	if !s.opts.Authority {
		return shared.NewNotAuthorityError("processing update")
	}
	if s.sc == nil {
		return shared.NewSpacecraftError("processing system is not loaded")
	}

	dt := shared.SecondsBetween(t0, t1)
	if dt <= 0 {
		return nil
	}

	s.last = TickStats{Seconds: dt}
	docked := s.env != nil && s.env.IsDocked()
	budget := s.newPowerBudget()
	crewLeft := math.MaxInt
	if s.crew != nil {
		crewLeft = s.crew.AvailableCrew()
	}
	s.busyCrew = 0

	for gi := range s.groups {
		state := &s.groups[gi]
		group := s.sc.ModuleGroup(state.GroupIndex)
		slots := s.cargoSlots(group)

		// attendance crew staffs a whole group or none of it
		understaffed := false
		if state.Active && !docked {
			required := state.RequiredCrew()
			if required > crewLeft {
				understaffed = true
			} else {
				crewLeft -= required
				s.busyCrew += required
			}
		}

		for ci := range state.Chains {
			s.updateChain(state, ci, slots, dt, docked, understaffed, budget)
		}
		if state.MiningRig != nil {
			s.updateMiningRig(state.MiningRig, slots, dt, docked, budget)
		}
	}

	return nil
}

func (s *System) updateChain(state *GroupState, index int, slots []spacecraft.ModuleIndices, dt float64, docked, understaffed bool, budget *powerBudget) {
	chain := &state.Chains[index]
	previous := chain.Status
	defer func() {
		if chain.Status != previous {
			s.log.Debug("chain status changed",
				"group", state.GroupIndex, "chain", index,
				"from", previous.String(), "to", chain.Status.String())
		}
	}()

	if docked {
		chain.Status = StatusDocked
		return
	}
	if !state.Active {
		chain.Status = StatusStopped
		return
	}
	chain.Status = StatusProcessing

	plan, ok := s.planChain(chain, slots)
	if !ok {
		chain.Status = StatusBlocked
		return
	}
	if understaffed {
		chain.Status = StatusBlocked
		return
	}
	if !budget.admit(chain.Power()) {
		chain.Status = StatusPowerLoss
		return
	}

	delta := math.Min(chain.ProcessingRate*dt, plan.minimumLeft)
	if delta <= 0 {
		s.invariant("chain %d of group %d computed a non-positive delta %f", index, state.GroupIndex, delta)
		return
	}

	for i, resource := range chain.Inputs {
		s.applyCargo(plan.inputs[i], resource, -delta)
	}
	for i, resource := range chain.Outputs {
		s.applyCargo(plan.outputs[i], resource, delta)
	}
	s.last.ProcessedMass += delta * float64(len(chain.Outputs))
}

// powerBudget admits chains and the rig during one Update, in group order.
// With a battery, any stored energy admits a consumer. Without one, each
// consumer's own draw must fit in the surplus left by those admitted before.
type powerBudget struct {
	source  EnergySource
	surplus float64
}

func (s *System) newPowerBudget() *powerBudget {
	budget := &powerBudget{source: s.energy}
	if s.energy != nil && !s.energy.HasStorage() {
		budget.surplus = s.energy.BaseSurplus()
	}
	return budget
}

// check reports whether a draw in kW could run, negative draws being producers
func (b *powerBudget) check(draw float64) bool {
	switch {
	case b.source == nil || draw <= 0:
		return true
	case b.source.HasStorage():
		return b.source.RemainingEnergy() > 0
	default:
		return b.surplus-draw >= 0
	}
}

// admit checks the draw and reserves it
func (b *powerBudget) admit(draw float64) bool {
	if !b.check(draw) {
		return false
	}
	if b.source != nil && !b.source.HasStorage() {
		b.surplus -= draw
	}
	return true
}

// chainPlan maps each chain resource to the slot it is taken from or stored in
type chainPlan struct {
	inputs      []spacecraft.ModuleIndices
	outputs     []spacecraft.ModuleIndices
	minimumLeft float64
}

// planChain selects a slot for every input and output. It fails when an input
// is missing, when an output has no room, or when nothing bounds the delta.
func (s *System) planChain(chain *Chain, slots []spacecraft.ModuleIndices) (chainPlan, bool) {
	plan := chainPlan{minimumLeft: math.Inf(1)}
	if chain.IsDegenerate() {
		return plan, false
	}

	for _, resource := range chain.Inputs {
		found := false
		for _, slot := range slots {
			cargo := s.cargo[slot.CompartmentIndex][slot.ModuleIndex]
			if cargo.Holds(resource) && cargo.Amount > 0 {
				plan.inputs = append(plan.inputs, slot)
				plan.minimumLeft = math.Min(plan.minimumLeft, cargo.Amount)
				found = true
				break
			}
		}
		if !found {
			return plan, false
		}
	}

	reserved := make(map[spacecraft.ModuleIndices]bool)
	for _, resource := range chain.Outputs {
		slot, headroom, found := s.outputSlot(resource, slots, reserved)
		if !found {
			return plan, false
		}
		reserved[slot] = true
		plan.outputs = append(plan.outputs, slot)
		plan.minimumLeft = math.Min(plan.minimumLeft, headroom)
	}

	if math.IsInf(plan.minimumLeft, 1) || plan.minimumLeft <= 0 {
		return plan, false
	}
	return plan, true
}

// outputSlot prefers a slot already holding the resource with headroom, then
// the first empty slot that accepts it
func (s *System) outputSlot(resource *catalog.Resource, slots []spacecraft.ModuleIndices, reserved map[spacecraft.ModuleIndices]bool) (spacecraft.ModuleIndices, float64, bool) {
	for _, slot := range slots {
		cargo := s.cargo[slot.CompartmentIndex][slot.ModuleIndex]
		headroom := cargo.Headroom(s.capacity(slot))
		if cargo.Holds(resource) && headroom > 0 && !reserved[slot] {
			return slot, headroom, true
		}
	}
	for _, slot := range slots {
		cargo := s.cargo[slot.CompartmentIndex][slot.ModuleIndex]
		module := s.sc.Module(slot.CompartmentIndex, slot.ModuleIndex)
		if cargo.IsEmpty() && module.Accepts(resource) && !reserved[slot] {
			return slot, s.capacity(slot), true
		}
	}
	return spacecraft.ModuleIndices{}, 0, false
}

// cargoSlots lists the cargo module slots of a group in member order
func (s *System) cargoSlots(group *spacecraft.ModuleGroup) []spacecraft.ModuleIndices {
	if group == nil {
		return nil
	}
	var slots []spacecraft.ModuleIndices
	for _, indices := range group.Modules() {
		if s.sc.Module(indices.CompartmentIndex, indices.ModuleIndex).IsCargo() {
			slots = append(slots, indices)
		}
	}
	return slots
}

func (s *System) capacity(slot spacecraft.ModuleIndices) float64 {
	return s.sc.Compartments[slot.CompartmentIndex].CargoCapacity(slot.ModuleIndex)
}

// applyCargo adds delta of the resource to a slot, keeping
// 0 <= Amount <= capacity and Resource == nil exactly when Amount == 0
func (s *System) applyCargo(slot spacecraft.ModuleIndices, resource *catalog.Resource, delta float64) {
	cargo := &s.cargo[slot.CompartmentIndex][slot.ModuleIndex]
	capacity := s.capacity(slot)

	if cargo.Resource != nil && cargo.Resource != resource {
		s.invariant("slot %d.%d holds %s, cannot apply %s",
			slot.CompartmentIndex, slot.ModuleIndex, cargo.Resource.Identifier, resource.Identifier)
		return
	}

	// rounding residue under massEpsilon is clamped silently
	amount := cargo.Amount + delta
	if amount < 0 {
		if amount < -massEpsilon {
			s.invariant("slot %d.%d would hold %f T of %s", slot.CompartmentIndex, slot.ModuleIndex, amount, resource.Identifier)
		}
		amount = 0
	}
	if amount > capacity {
		if amount > capacity+massEpsilon {
			s.invariant("slot %d.%d would exceed its capacity (%f > %f)", slot.CompartmentIndex, slot.ModuleIndex, amount, capacity)
		}
		amount = capacity
	}

	if amount <= 0 {
		*cargo = spacecraft.Cargo{}
		return
	}
	cargo.Resource = resource
	cargo.Amount = amount
}

func (s *System) invariant(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if s.opts.StrictInvariants {
		panic("processing invariant violated: " + message)
	}
	s.log.Warn("processing invariant violated, clamping", "detail", message)
}

// LastTick returns the statistics of the last Update that moved time forward
func (s *System) LastTick() TickStats {
	return s.last
}

// SetProcessingGroupActive toggles a group. Replicas forward the request.
func (s *System) SetProcessingGroupActive(ctx context.Context, groupIndex int, active bool) error {
	state := s.groupState(groupIndex)
	if state == nil {
		return shared.NewUnknownGroupError(groupIndex)
	}

	if !s.opts.Authority {
		if s.opts.Forwarder == nil {
			return shared.NewNotAuthorityError("toggling a processing group")
		}
		return s.opts.Forwarder.ForwardProcessingGroupActive(ctx, groupIndex, active)
	}

	state.Active = active
	s.log.Debug("processing group toggled", "group", groupIndex, "active", active)
	return nil
}

// IsProcessingGroupActive reports whether the group was toggled on
func (s *System) IsProcessingGroupActive(groupIndex int) bool {
	state := s.groupState(groupIndex)
	return state != nil && state.Active
}

func (s *System) groupState(groupIndex int) *GroupState {
	for gi := range s.groups {
		if s.groups[gi].GroupIndex == groupIndex {
			return &s.groups[gi]
		}
	}
	return nil
}

// GroupStates returns a copy of every tracked group
func (s *System) GroupStates() []GroupState {
	result := make([]GroupState, len(s.groups))
	for i, group := range s.groups {
		result[i] = group
		result[i].Chains = append([]Chain(nil), group.Chains...)
		if group.MiningRig != nil {
			rig := *group.MiningRig
			result[i].MiningRig = &rig
		}
	}
	return result
}

// ProcessingGroupCount returns the number of tracked groups
func (s *System) ProcessingGroupCount() int {
	return len(s.groups)
}

// GetCargo returns the runtime cargo of a slot
func (s *System) GetCargo(compartmentIndex, moduleIndex int) spacecraft.Cargo {
	if compartmentIndex < 0 || compartmentIndex >= len(s.cargo) || moduleIndex < 0 || moduleIndex >= spacecraft.MaxModuleCount {
		return spacecraft.Cargo{}
	}
	return s.cargo[compartmentIndex][moduleIndex]
}

// GetProcessingGroupStatus returns the status of every chain of the group
func (s *System) GetProcessingGroupStatus(groupIndex int) []Status {
	state := s.groupState(groupIndex)
	if state == nil {
		return nil
	}
	statuses := make([]Status, len(state.Chains))
	for i, chain := range state.Chains {
		statuses[i] = chain.Status
	}
	return statuses
}

// GetModuleStatus returns the status of the chain holding the module
func (s *System) GetModuleStatus(compartmentIndex, moduleIndex int) (Status, bool) {
	for _, group := range s.groups {
		for _, chain := range group.Chains {
			if chain.Contains(compartmentIndex, moduleIndex) {
				return chain.Status, true
			}
		}
	}
	return StatusStopped, false
}

// RequiredCrew returns the crew a group needs to run all of its chains
func (s *System) RequiredCrew(groupIndex int) int {
	state := s.groupState(groupIndex)
	if state == nil {
		return 0
	}
	return state.RequiredCrew()
}

// BusyCrew returns the crew operating chains during the last Update
func (s *System) BusyCrew() int {
	return s.busyCrew
}

// ProcessingPower returns the net power of processing chains, negative when producing
func (s *System) ProcessingPower() float64 {
	power := 0.0
	for _, group := range s.groups {
		for i := range group.Chains {
			if group.Chains[i].Status == StatusProcessing {
				power += group.Chains[i].Power()
			}
		}
	}
	return power
}

// RemainingProductionTime estimates when the first active chain or the rig
// stops for lack of input or room. Advisory only.
func (s *System) RemainingProductionTime() (time.Duration, bool) {
	best := math.Inf(1)

	for gi := range s.groups {
		state := &s.groups[gi]
		slots := s.cargoSlots(s.sc.ModuleGroup(state.GroupIndex))

		for ci := range state.Chains {
			chain := &state.Chains[ci]
			if chain.Status != StatusProcessing {
				continue
			}
			if plan, ok := s.planChain(chain, slots); ok {
				best = math.Min(best, plan.minimumLeft/chain.ProcessingRate)
			}
		}

		if rig := state.MiningRig; rig != nil && rig.Status == StatusProcessing && rig.CurrentRate > 0 {
			if asteroid := s.asteroid(); asteroid != nil {
				headroom := 0.0
				for _, slot := range s.miningSlots(slots, asteroid.Mineral()) {
					headroom += s.cargo[slot.CompartmentIndex][slot.ModuleIndex].Headroom(s.capacity(slot))
				}
				best = math.Min(best, headroom/rig.CurrentRate)
			}
		}
	}

	if math.IsInf(best, 1) {
		return 0, false
	}
	return time.Duration(best * float64(time.Second)), true
}
