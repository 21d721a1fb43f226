package steps

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

const massTolerance = 1e-6

var (
	moduleSlots = map[string]int{
		"left":   helpers.SlotLeft,
		"center": helpers.SlotCenter,
		"right":  helpers.SlotRight,
	}
	equipmentSlots = map[string]int{
		"left":    helpers.EquipLeft,
		"right":   helpers.EquipRight,
		"top":     helpers.EquipTop,
		"aft":     helpers.EquipAft,
		"forward": helpers.EquipFwd,
	}
)

// spacecraftContext drives a spacecraft built from the fixture catalog
// through derivation, simulation and editing
type spacecraftContext struct {
	fixture *helpers.CatalogFixture
	builder *helpers.SpacecraftBuilder
	sc      *spacecraft.Spacecraft
	env     *helpers.FakeEnvironment
	system  *processing.System
	states  []processing.GroupState
	now     time.Time
	err     error
}

func (ctx *spacecraftContext) reset() {
	ctx.fixture = helpers.NewCatalogFixture()
	ctx.builder = nil
	ctx.sc = nil
	ctx.env = &helpers.FakeEnvironment{}
	ctx.system = nil
	ctx.states = nil
	ctx.now = shared.SimulationEpoch
	ctx.err = nil
}

// spacecraft builds the spacecraft on first use so that every Given step
// lands before the build
func (ctx *spacecraftContext) spacecraft() (*spacecraft.Spacecraft, error) {
	if ctx.sc != nil {
		return ctx.sc, nil
	}
	if ctx.builder == nil {
		return nil, fmt.Errorf("no spacecraft was described")
	}
	ctx.sc = ctx.builder.Build()
	return ctx.sc, nil
}

// Structure

func (ctx *spacecraftContext) aSpacecraftWithACompartment(identifier string) error {
	description, err := ctx.fixture.Catalog.Compartment(identifier)
	if err != nil {
		return err
	}
	ctx.builder = helpers.NewSpacecraftBuilder("Subject").Compartment(description)
	return nil
}

func (ctx *spacecraftContext) anotherCompartment(identifier string) error {
	if ctx.builder == nil {
		return fmt.Errorf("no spacecraft was described")
	}
	description, err := ctx.fixture.Catalog.Compartment(identifier)
	if err != nil {
		return err
	}
	ctx.builder.Compartment(description)
	return nil
}

func (ctx *spacecraftContext) moduleInSlot(identifier, slot string, compartmentIndex int) error {
	if ctx.builder == nil {
		return fmt.Errorf("no spacecraft was described")
	}
	module, err := ctx.fixture.Catalog.Module(identifier)
	if err != nil {
		return err
	}
	ctx.builder.Module(compartmentIndex, moduleSlots[slot], module)
	return nil
}

// cellValues flattens a table row
func cellValues(row *messages.PickleTableRow) []string {
	values := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		values[i] = strings.TrimSpace(cell.Value)
	}
	return values
}

// theModulesOfCompartment reads a | slot | module | table, header first
func (ctx *spacecraftContext) theModulesOfCompartment(compartmentIndex int, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header and at least one module row")
	}
	header := cellValues(table.Rows[0])
	if len(header) != 2 || header[0] != "slot" || header[1] != "module" {
		return fmt.Errorf("expected columns | slot | module |, got %v", header)
	}
	for _, row := range table.Rows[1:] {
		values := cellValues(row)
		if _, ok := moduleSlots[values[0]]; !ok {
			return fmt.Errorf("unknown module slot %q", values[0])
		}
		if err := ctx.moduleInSlot(values[1], values[0], compartmentIndex); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *spacecraftContext) equipmentInSocket(identifier, socket string, compartmentIndex int) error {
	if ctx.builder == nil {
		return fmt.Errorf("no spacecraft was described")
	}
	equipment, err := ctx.fixture.Catalog.Equipment(identifier)
	if err != nil {
		return err
	}
	ctx.builder.Equipment(compartmentIndex, equipmentSlots[socket], equipment)
	return nil
}

func (ctx *spacecraftContext) cargoInSlot(amount float64, resourceID, slot string, compartmentIndex int) error {
	if ctx.builder == nil {
		return fmt.Errorf("no spacecraft was described")
	}
	resource, err := ctx.fixture.Catalog.Resource(resourceID)
	if err != nil {
		return err
	}
	ctx.builder.Cargo(compartmentIndex, moduleSlots[slot], resource, amount)
	return nil
}

// Chains

func (ctx *spacecraftContext) theProcessingGroupsAreDerived() error {
	sc, err := ctx.spacecraft()
	if err != nil {
		return err
	}
	ctx.states = processing.DeriveGroupStates(sc)
	return nil
}

func (ctx *spacecraftContext) thereAreProcessingGroups(count int) error {
	if len(ctx.states) != count {
		return fmt.Errorf("expected %d processing groups, got %d", count, len(ctx.states))
	}
	return nil
}

func (ctx *spacecraftContext) derivedGroup(groupIndex int) (*processing.GroupState, error) {
	for i := range ctx.states {
		if ctx.states[i].GroupIndex == groupIndex {
			return &ctx.states[i], nil
		}
	}
	return nil, fmt.Errorf("no processing group %d", groupIndex)
}

func (ctx *spacecraftContext) groupHasChains(groupIndex, count int) error {
	group, err := ctx.derivedGroup(groupIndex)
	if err != nil {
		return err
	}
	if len(group.Chains) != count {
		return fmt.Errorf("expected %d chains in group %d, got %d", count, groupIndex, len(group.Chains))
	}
	return nil
}

func resourceList(set catalog.ResourceSet) string {
	ids := make([]string, 0, len(set))
	for _, resource := range set {
		ids = append(ids, resource.Identifier)
	}
	return strings.Join(ids, ",")
}

func (ctx *spacecraftContext) chainConsumesAndProduces(chainIndex, groupIndex int, inputs, outputs string) error {
	group, err := ctx.derivedGroup(groupIndex)
	if err != nil {
		return err
	}
	if chainIndex >= len(group.Chains) {
		return fmt.Errorf("group %d has no chain %d", groupIndex, chainIndex)
	}
	chain := group.Chains[chainIndex]
	if got := resourceList(chain.Inputs); got != inputs {
		return fmt.Errorf("expected chain inputs %q, got %q", inputs, got)
	}
	if got := resourceList(chain.Outputs); got != outputs {
		return fmt.Errorf("expected chain outputs %q, got %q", outputs, got)
	}
	return nil
}

// Simulation

func (ctx *spacecraftContext) anchoredToAsteroid(resourceID string, density float64) error {
	resource, err := ctx.fixture.Catalog.Resource(resourceID)
	if err != nil {
		return err
	}
	ctx.env.Anchored = &helpers.FakeAsteroid{Resource: resource, Density: density}
	return nil
}

func (ctx *spacecraftContext) theSimulationIsLoaded() error {
	sc, err := ctx.spacecraft()
	if err != nil {
		return err
	}
	ctx.system = processing.NewSystem(ctx.env, &helpers.FakeEnergy{Energy: 100}, &helpers.FakeCrew{Crew: 5},
		processing.Options{Authority: true, StrictInvariants: true})
	return ctx.system.Load(sc)
}

func (ctx *spacecraftContext) loadedSystem() (*processing.System, error) {
	if ctx.system == nil {
		return nil, fmt.Errorf("the simulation is not loaded")
	}
	return ctx.system, nil
}

func (ctx *spacecraftContext) processingGroupIsActivated(groupIndex int) error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	return system.SetProcessingGroupActive(context.Background(), groupIndex, true)
}

func (ctx *spacecraftContext) theMiningRigIsActivated() error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	ctx.err = system.SetMiningRigActive(context.Background(), true)
	return nil
}

func (ctx *spacecraftContext) secondsPass(seconds int) error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	next := ctx.now.Add(time.Duration(seconds) * time.Second)
	if err := system.Update(ctx.now, next); err != nil {
		return err
	}
	ctx.now = next
	return nil
}

func (ctx *spacecraftContext) theSpacecraftDocks() error {
	ctx.env.Docked = true
	return nil
}

func (ctx *spacecraftContext) theSimulationIsSaved() error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	return system.Save(ctx.sc)
}

func (ctx *spacecraftContext) everyChainIs(groupIndex int, expected string) error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	statuses := system.GetProcessingGroupStatus(groupIndex)
	if len(statuses) == 0 {
		return fmt.Errorf("group %d has no chains", groupIndex)
	}
	for i, status := range statuses {
		if status.String() != expected {
			return fmt.Errorf("expected chain %d of group %d to be %s, got %s", i, groupIndex, expected, status)
		}
	}
	return nil
}

func (ctx *spacecraftContext) groupIsInactive(groupIndex int) error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	if system.IsProcessingGroupActive(groupIndex) {
		return fmt.Errorf("expected group %d to be inactive", groupIndex)
	}
	return nil
}

func (ctx *spacecraftContext) theMiningRigIs(expected string) error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	status, ok := system.MiningRigStatus()
	if !ok {
		return fmt.Errorf("the spacecraft has no mining rig")
	}
	if status.String() != expected {
		return fmt.Errorf("expected the mining rig to be %s, got %s", expected, status)
	}
	return nil
}

func matchesMass(expected, actual float64, what string) error {
	if math.Abs(expected-actual) > massTolerance {
		return fmt.Errorf("expected %g T of %s, got %g T", expected, what, actual)
	}
	return nil
}

func (ctx *spacecraftContext) compartmentHolds(compartmentIndex int, amount float64, resourceID string) error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	total := 0.0
	for mi := 0; mi < ctx.sc.Compartments[compartmentIndex].ModuleSlotCount(); mi++ {
		cargo := system.GetCargo(compartmentIndex, mi)
		if cargo.Resource != nil && cargo.Resource.Identifier == resourceID {
			total += cargo.Amount
		}
	}
	return matchesMass(amount, total, resourceID)
}

func spacecraftHolds(sc *spacecraft.Spacecraft, compartmentIndex int, resourceID string) float64 {
	total := 0.0
	compartment := &sc.Compartments[compartmentIndex]
	for mi := 0; mi < compartment.ModuleSlotCount(); mi++ {
		cargo := compartment.Cargo(mi)
		if cargo.Resource != nil && cargo.Resource.Identifier == resourceID {
			total += cargo.Amount
		}
	}
	return total
}

func (ctx *spacecraftContext) theSavedSpacecraftHolds(amount float64, resourceID string) error {
	total := 0.0
	for ci := range ctx.sc.Compartments {
		total += spacecraftHolds(ctx.sc, ci, resourceID)
	}
	return matchesMass(amount, total, resourceID)
}

func (ctx *spacecraftContext) noHoldExceedsItsCapacity() error {
	system, err := ctx.loadedSystem()
	if err != nil {
		return err
	}
	for ci := range ctx.sc.Compartments {
		for mi := 0; mi < ctx.sc.Compartments[ci].ModuleSlotCount(); mi++ {
			amount := system.GetCargo(ci, mi).Amount
			if capacity := ctx.sc.CargoCapacity(ci, mi); amount > capacity+massTolerance {
				return fmt.Errorf("slot %d.%d holds %g T over a capacity of %g T", ci, mi, amount, capacity)
			}
		}
	}
	return nil
}

// Editing

func (ctx *spacecraftContext) thePropellantCapacityIs(expected float64) error {
	sc, err := ctx.spacecraft()
	if err != nil {
		return err
	}
	actual := sc.PropulsionMetrics().PropellantMassCapacity
	if math.Abs(actual-expected) > massTolerance {
		return fmt.Errorf("expected a propellant capacity of %g T, got %g T", expected, actual)
	}
	return nil
}

func (ctx *spacecraftContext) compartmentIsRemoved(compartmentIndex int) error {
	sc, err := ctx.spacecraft()
	if err != nil {
		return err
	}
	assembly := spacecraft.NewAssembly(sc, shared.NewMockClock(shared.SimulationEpoch))
	if err := assembly.RemoveCompartment(compartmentIndex); err != nil {
		return err
	}
	ctx.sc = assembly.Spacecraft()
	return nil
}

func (ctx *spacecraftContext) theOperationFails() error {
	if ctx.err == nil {
		return fmt.Errorf("expected the operation to fail")
	}
	return nil
}

// InitializeSpacecraftScenario registers the spacecraft steps
func InitializeSpacecraftScenario(sc *godog.ScenarioContext) {
	ctx := &spacecraftContext{}
	storage := &storageContext{spacecraft: ctx}

	sc.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, storage.reset()
	})

	sc.Step(`^a spacecraft with a "([^"]*)" compartment$`, ctx.aSpacecraftWithACompartment)
	sc.Step(`^a "([^"]*)" compartment$`, ctx.anotherCompartment)
	sc.Step(`^module "([^"]*)" in the (left|center|right) slot of compartment (\d+)$`, ctx.moduleInSlot)
	sc.Step(`^the modules of compartment (\d+):$`, ctx.theModulesOfCompartment)
	sc.Step(`^equipment "([^"]*)" in the (left|right|top|aft|forward) socket of compartment (\d+)$`, ctx.equipmentInSocket)
	sc.Step(`^(\d+(?:\.\d+)?) T of "([^"]*)" in the (left|center|right) slot of compartment (\d+)$`, ctx.cargoInSlot)

	sc.Step(`^the processing groups are derived$`, ctx.theProcessingGroupsAreDerived)
	sc.Step(`^there (?:is|are) (\d+) processing groups?$`, ctx.thereAreProcessingGroups)
	sc.Step(`^group (\d+) has (\d+) chains?$`, ctx.groupHasChains)
	sc.Step(`^chain (\d+) of group (\d+) consumes "([^"]*)" and produces "([^"]*)"$`, ctx.chainConsumesAndProduces)

	sc.Step(`^the spacecraft is anchored to an asteroid of "([^"]*)" at density (\d+(?:\.\d+)?)$`, ctx.anchoredToAsteroid)
	sc.Step(`^the simulation is loaded$`, ctx.theSimulationIsLoaded)
	sc.Step(`^processing group (\d+) is activated$`, ctx.processingGroupIsActivated)
	sc.Step(`^the mining rig is activated$`, ctx.theMiningRigIsActivated)
	sc.Step(`^(\d+) seconds? pass(?:es)?$`, ctx.secondsPass)
	sc.Step(`^the spacecraft docks$`, ctx.theSpacecraftDocks)
	sc.Step(`^the simulation is saved$`, ctx.theSimulationIsSaved)
	sc.Step(`^every chain of group (\d+) is "([^"]*)"$`, ctx.everyChainIs)
	sc.Step(`^group (\d+) is inactive$`, ctx.groupIsInactive)
	sc.Step(`^the mining rig is "([^"]*)"$`, ctx.theMiningRigIs)
	sc.Step(`^compartment (\d+) holds (\d+(?:\.\d+)?) T of "([^"]*)"$`, ctx.compartmentHolds)
	sc.Step(`^the saved spacecraft holds (\d+(?:\.\d+)?) T of "([^"]*)"$`, ctx.theSavedSpacecraftHolds)
	sc.Step(`^no hold exceeds its capacity$`, ctx.noHoldExceedsItsCapacity)

	sc.Step(`^the propellant capacity is (\d+(?:\.\d+)?) T$`, ctx.thePropellantCapacityIs)
	sc.Step(`^compartment (\d+) is removed$`, ctx.compartmentIsRemoved)

	sc.Step(`^a player "([^"]*)" with (\d+) credits$`, storage.aPlayerWithCredits)
	sc.Step(`^the spacecraft is stored for "([^"]*)"$`, storage.theSpacecraftIsStoredFor)
	sc.Step(`^the spacecraft is loaded back for "([^"]*)"$`, storage.theSpacecraftIsLoadedBackFor)
	sc.Step(`^compartment (\d+) of the loaded spacecraft holds (\d+(?:\.\d+)?) T of "([^"]*)"$`, storage.loadedSpacecraftHolds)

	sc.Step(`^the operation fails$`, ctx.theOperationFails)
}
