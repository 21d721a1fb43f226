package catalog

import (
	"fmt"
	"sort"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// Catalog is the resolved, immutable asset table. Lookups never perform I/O.
type Catalog struct {
	resources    map[string]*Resource
	modules      map[string]*ModuleDescription
	equipment    map[string]*EquipmentDescription
	compartments map[string]*CompartmentDescription
}

// New builds a catalog and checks identifiers, payloads and slot counts
func New(
	resources []*Resource,
	modules []*ModuleDescription,
	equipment []*EquipmentDescription,
	compartments []*CompartmentDescription,
) (*Catalog, error) {
	c := &Catalog{
		resources:    make(map[string]*Resource, len(resources)),
		modules:      make(map[string]*ModuleDescription, len(modules)),
		equipment:    make(map[string]*EquipmentDescription, len(equipment)),
		compartments: make(map[string]*CompartmentDescription, len(compartments)),
	}

	for _, r := range resources {
		if err := c.checkIdentifier(r.Identifier); err != nil {
			return nil, err
		}
		c.resources[r.Identifier] = r
	}

	for _, m := range modules {
		if err := c.checkIdentifier(m.Identifier); err != nil {
			return nil, err
		}
		if err := validateModule(m); err != nil {
			return nil, err
		}
		c.modules[m.Identifier] = m
	}

	for _, e := range equipment {
		if err := c.checkIdentifier(e.Identifier); err != nil {
			return nil, err
		}
		if err := validateEquipment(e); err != nil {
			return nil, err
		}
		c.equipment[e.Identifier] = e
	}

	for _, comp := range compartments {
		if err := c.checkIdentifier(comp.Identifier); err != nil {
			return nil, err
		}
		if len(comp.ModuleSlots) > MaxModuleCount {
			return nil, shared.NewCatalogError(comp.Identifier,
				fmt.Sprintf("%d module slots exceed the limit of %d", len(comp.ModuleSlots), MaxModuleCount))
		}
		if len(comp.EquipmentSlots) > MaxEquipmentCount {
			return nil, shared.NewCatalogError(comp.Identifier,
				fmt.Sprintf("%d equipment slots exceed the limit of %d", len(comp.EquipmentSlots), MaxEquipmentCount))
		}
		c.compartments[comp.Identifier] = comp
	}

	return c, nil
}

func (c *Catalog) checkIdentifier(id string) error {
	if id == "" {
		return shared.NewCatalogError(id, "empty identifier")
	}
	_, r := c.resources[id]
	_, m := c.modules[id]
	_, e := c.equipment[id]
	_, comp := c.compartments[id]
	if r || m || e || comp {
		return shared.NewCatalogError(id, "duplicate identifier")
	}
	return nil
}

func validateModule(m *ModuleDescription) error {
	switch m.Kind {
	case ModuleKindPropellant:
		if m.Propellant == nil {
			return shared.NewCatalogError(m.Identifier, "propellant module without propellant payload")
		}
	case ModuleKindCargo:
		if m.Cargo == nil {
			return shared.NewCatalogError(m.Identifier, "cargo module without cargo payload")
		}
	case ModuleKindProcessing:
		if m.Processing == nil {
			return shared.NewCatalogError(m.Identifier, "processing module without processing payload")
		}
		if m.Processing.ProcessingRate <= 0 {
			return shared.NewCatalogError(m.Identifier, "processing rate must be positive")
		}
		if m.Processing.Inputs.Intersects(m.Processing.Outputs) {
			return shared.NewCatalogError(m.Identifier, "a resource cannot be both input and output")
		}
	}
	return nil
}

func validateEquipment(e *EquipmentDescription) error {
	missing := false
	switch e.Kind {
	case EquipmentKindEngine:
		missing = e.Engine == nil
	case EquipmentKindThruster:
		missing = e.Thruster == nil
	case EquipmentKindMiningRig:
		missing = e.MiningRig == nil
	case EquipmentKindRadioMast:
		missing = e.RadioMast == nil
	case EquipmentKindPower:
		missing = e.Power == nil
	case EquipmentKindHatch:
		missing = e.Hatch == nil
	case EquipmentKindPropellantTank:
		missing = e.PropellantTank == nil
	}
	if missing {
		return shared.NewCatalogError(e.Identifier, fmt.Sprintf("%s equipment without %s payload", e.Kind, e.Kind))
	}
	return nil
}

// Resource looks up a resource by identifier
func (c *Catalog) Resource(id string) (*Resource, error) {
	if r, ok := c.resources[id]; ok {
		return r, nil
	}
	return nil, shared.NewCatalogError(id, "unknown resource")
}

// Module looks up a module description by identifier
func (c *Catalog) Module(id string) (*ModuleDescription, error) {
	if m, ok := c.modules[id]; ok {
		return m, nil
	}
	return nil, shared.NewCatalogError(id, "unknown module")
}

// Equipment looks up an equipment description by identifier
func (c *Catalog) Equipment(id string) (*EquipmentDescription, error) {
	if e, ok := c.equipment[id]; ok {
		return e, nil
	}
	return nil, shared.NewCatalogError(id, "unknown equipment")
}

// Compartment looks up a compartment description by identifier
func (c *Catalog) Compartment(id string) (*CompartmentDescription, error) {
	if comp, ok := c.compartments[id]; ok {
		return comp, nil
	}
	return nil, shared.NewCatalogError(id, "unknown compartment")
}

// Resources returns all resources sorted by identifier
func (c *Catalog) Resources() []*Resource {
	return sortedValues(c.resources, func(r *Resource) string { return r.Identifier })
}

// Modules returns all module descriptions sorted by identifier
func (c *Catalog) Modules() []*ModuleDescription {
	return sortedValues(c.modules, func(m *ModuleDescription) string { return m.Identifier })
}

// Equipments returns all equipment descriptions sorted by identifier
func (c *Catalog) Equipments() []*EquipmentDescription {
	return sortedValues(c.equipment, func(e *EquipmentDescription) string { return e.Identifier })
}

// Compartments returns all compartment descriptions sorted by identifier
func (c *Catalog) Compartments() []*CompartmentDescription {
	return sortedValues(c.compartments, func(comp *CompartmentDescription) string { return comp.Identifier })
}

// ProcessingModules returns the processing modules sorted by identifier
func (c *Catalog) ProcessingModules() []*ModuleDescription {
	var result []*ModuleDescription
	for _, m := range c.Modules() {
		if m.IsProcessing() {
			result = append(result, m)
		}
	}
	return result
}

func sortedValues[T any](values map[string]T, key func(T) string) []T {
	result := make([]T, 0, len(values))
	for _, v := range values {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return key(result[i]) < key(result[j]) })
	return result
}
