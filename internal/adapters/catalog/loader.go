package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	domain "github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// DefaultDocument returns the YAML source of the built-in catalog
func DefaultDocument() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// LoadDefault builds the built-in catalog
func LoadDefault() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse validates a YAML document against the schema and the struct rules,
// then resolves it into an immutable catalog
func Parse(data []byte) (*domain.Catalog, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return doc.Resolve()
}

// Decode validates and decodes a YAML document without resolving references
func Decode(data []byte) (*Document, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := validator.New().Struct(&doc); err != nil {
		return nil, formatValidationError(err)
	}
	return &doc, nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s failed %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// Resolve converts the document into domain descriptions, rejecting unknown
// resource references
func (d *Document) Resolve() (*domain.Catalog, error) {
	resources := make([]*domain.Resource, 0, len(d.Resources))
	byID := make(map[string]*domain.Resource, len(d.Resources))
	for _, r := range d.Resources {
		resourceType, err := domain.ParseResourceType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", r.ID, err)
		}
		resource := &domain.Resource{
			Identifier:  r.ID,
			Name:        r.Name,
			Description: r.Description,
			Type:        resourceType,
		}
		resources = append(resources, resource)
		byID[r.ID] = resource
	}

	lookup := func(owner string, ids []string) (domain.ResourceSet, error) {
		set := make(domain.ResourceSet, 0, len(ids))
		for _, id := range ids {
			resource, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("module %s references unknown resource %q", owner, id)
			}
			if set.Contains(resource) {
				continue
			}
			set = append(set, resource)
		}
		return set, nil
	}

	modules := make([]*domain.ModuleDescription, 0, len(d.Modules))
	for _, m := range d.Modules {
		module, err := m.resolve(lookup)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}

	equipment := make([]*domain.EquipmentDescription, 0, len(d.Equipment))
	for _, e := range d.Equipment {
		description, err := e.resolve()
		if err != nil {
			return nil, err
		}
		equipment = append(equipment, description)
	}

	compartments := make([]*domain.CompartmentDescription, 0, len(d.Compartments))
	for _, c := range d.Compartments {
		compartment, err := c.resolve()
		if err != nil {
			return nil, err
		}
		compartments = append(compartments, compartment)
	}

	return domain.New(resources, modules, equipment, compartments)
}

func (m ModuleDocument) resolve(lookup func(string, []string) (domain.ResourceSet, error)) (*domain.ModuleDescription, error) {
	module := &domain.ModuleDescription{
		Identifier:  m.ID,
		Name:        m.Name,
		Mass:        m.Mass,
		CrewEffect:  m.CrewEffect,
		NeedsPiping: m.NeedsPiping,
	}

	switch m.Kind {
	case "propellant":
		module.Kind = domain.ModuleKindPropellant
		module.Propellant = &domain.PropellantModule{PropellantMass: m.PropellantMass}
	case "cargo":
		cargoType, err := domain.ParseResourceType(m.CargoType)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.ID, err)
		}
		module.Kind = domain.ModuleKindCargo
		module.Cargo = &domain.CargoModule{CargoMass: m.CargoMass, CargoType: cargoType}
	case "processing":
		inputs, err := lookup(m.ID, m.Inputs)
		if err != nil {
			return nil, err
		}
		outputs, err := lookup(m.ID, m.Outputs)
		if err != nil {
			return nil, err
		}
		module.Kind = domain.ModuleKindProcessing
		module.Processing = &domain.ProcessingModule{
			Inputs:         inputs,
			Outputs:        outputs,
			ProcessingRate: m.ProcessingRate,
			Power:          m.Power,
		}
	default:
		module.Kind = domain.ModuleKindStructural
	}
	return module, nil
}

func (e EquipmentDocument) resolve() (*domain.EquipmentDescription, error) {
	equipmentType, err := domain.ParseEquipmentType(e.Type)
	if err != nil {
		return nil, fmt.Errorf("equipment %s: %w", e.ID, err)
	}
	description := &domain.EquipmentDescription{
		Identifier:      e.ID,
		Name:            e.Name,
		Mass:            e.Mass,
		Type:            equipmentType,
		RequiresPairing: e.RequiresPairing,
		CrewEffect:      e.CrewEffect,
	}

	switch e.Kind {
	case "engine":
		description.Kind = domain.EquipmentKindEngine
		description.Engine = &domain.EngineEquipment{Thrust: e.Thrust, SpecificImpulse: e.SpecificImpulse}
	case "thruster":
		description.Kind = domain.EquipmentKindThruster
		description.Thruster = &domain.ThrusterEquipment{Thrust: e.Thrust}
	case "mining_rig":
		description.Kind = domain.EquipmentKindMiningRig
		description.MiningRig = &domain.MiningRigEquipment{ExtractionRate: e.ExtractionRate, Power: e.Power}
	case "radio_mast":
		description.Kind = domain.EquipmentKindRadioMast
		description.RadioMast = &domain.RadioMastEquipment{Power: e.Power}
	case "power":
		description.Kind = domain.EquipmentKindPower
		description.Power = &domain.PowerEquipment{Power: e.Power, Capacity: e.Capacity, Solar: e.Solar}
	case "hatch":
		description.Kind = domain.EquipmentKindHatch
		description.Hatch = &domain.HatchEquipment{IsHabitat: e.Habitat}
	case "propellant_tank":
		description.Kind = domain.EquipmentKindPropellantTank
		description.PropellantTank = &domain.PropellantTankEquipment{PropellantMass: e.PropellantMass}
	default:
		description.Kind = domain.EquipmentKindGeneric
	}
	return description, nil
}

func (c CompartmentDocument) resolve() (*domain.CompartmentDescription, error) {
	compartment := &domain.CompartmentDescription{
		Identifier: c.ID,
		Name:       c.Name,
		Mass:       c.Mass,
	}

	sockets := make(map[string]bool, len(c.EquipmentSlots))
	for _, slot := range c.EquipmentSlots {
		supported := make([]domain.EquipmentType, 0, len(slot.Types))
		for _, value := range slot.Types {
			equipmentType, err := domain.ParseEquipmentType(value)
			if err != nil {
				return nil, fmt.Errorf("compartment %s slot %s: %w", c.ID, slot.Name, err)
			}
			supported = append(supported, equipmentType)
		}
		sockets[slot.Socket] = true
		compartment.EquipmentSlots = append(compartment.EquipmentSlots, domain.EquipmentSlot{
			Name:           slot.Name,
			SocketName:     slot.Socket,
			SupportedTypes: supported,
		})
	}

	for _, slot := range c.ModuleSlots {
		for _, socket := range slot.LinkedEquipment {
			if !sockets[socket] {
				return nil, fmt.Errorf("compartment %s module slot %s links unknown equipment socket %q", c.ID, slot.Name, socket)
			}
		}
		compartment.ModuleSlots = append(compartment.ModuleSlots, domain.ModuleSlot{
			Name:             slot.Name,
			SocketName:       slot.Socket,
			LinkedEquipments: slot.LinkedEquipment,
			ForceSkirtPiping: slot.ForceSkirtPiping,
		})
	}

	for _, group := range c.EquipmentSlotGroups {
		for _, socket := range group {
			if !sockets[socket] {
				return nil, fmt.Errorf("compartment %s slot group references unknown socket %q", c.ID, socket)
			}
		}
		compartment.EquipmentSlotGroups = append(compartment.EquipmentSlotGroups, domain.EquipmentSlotGroup{SocketNames: group})
	}

	return compartment, nil
}
