package spacecraft

import "github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"

func (s *Spacecraft) eachSlot(compartmentIndex, moduleIndex int, fn func(c *Compartment, mi int) bool) {
	for ci := range s.Compartments {
		if compartmentIndex != AnyCompartment && ci != compartmentIndex {
			continue
		}
		for mi := 0; mi < MaxModuleCount; mi++ {
			if moduleIndex != AnyCompartment && mi != moduleIndex {
				continue
			}
			if !fn(&s.Compartments[ci], mi) {
				return
			}
		}
	}
}

// CargoCapacity sums slot capacities; AnyCompartment acts as a wildcard for either index
func (s *Spacecraft) CargoCapacity(compartmentIndex, moduleIndex int) float64 {
	total := 0.0
	s.eachSlot(compartmentIndex, moduleIndex, func(c *Compartment, mi int) bool {
		total += c.CargoCapacity(mi)
		return true
	})
	return total
}

// CargoMass sums the mass of the resource stored in the matching slots
func (s *Spacecraft) CargoMass(resource *catalog.Resource, compartmentIndex, moduleIndex int) float64 {
	total := 0.0
	s.eachSlot(compartmentIndex, moduleIndex, func(c *Compartment, mi int) bool {
		if c.Modules[mi].Cargo.Holds(resource) {
			total += c.Modules[mi].Cargo.Amount
		}
		return true
	})
	return total
}

// AvailableCargoMass sums the free mass for the resource in the matching slots
func (s *Spacecraft) AvailableCargoMass(resource *catalog.Resource, compartmentIndex, moduleIndex int) float64 {
	total := 0.0
	s.eachSlot(compartmentIndex, moduleIndex, func(c *Compartment, mi int) bool {
		total += c.AvailableCargoMass(mi, resource)
		return true
	})
	return total
}

// ModifyCargo spreads massDelta over the matching slots in order and
// returns true when it was entirely applied
func (s *Spacecraft) ModifyCargo(resource *catalog.Resource, massDelta float64, compartmentIndex, moduleIndex int) bool {
	remaining := massDelta
	s.eachSlot(compartmentIndex, moduleIndex, func(c *Compartment, mi int) bool {
		if c.CanModifyCargo(mi, resource, remaining) {
			remaining -= c.ModifyCargo(mi, resource, remaining)
		}
		return remaining != 0
	})
	return remaining == 0
}

// OwnedResources lists every resource stored aboard, in slot order
func (s *Spacecraft) OwnedResources() catalog.ResourceSet {
	var result catalog.ResourceSet
	s.eachSlot(AnyCompartment, AnyCompartment, func(c *Compartment, mi int) bool {
		cargo := c.Modules[mi].Cargo
		if cargo.Amount > 0 && !result.Contains(cargo.Resource) {
			result = append(result, cargo.Resource)
		}
		return true
	})
	return result
}

// ClearCargo empties every slot
func (s *Spacecraft) ClearCargo() {
	for ci := range s.Compartments {
		s.Compartments[ci].ClearCargo()
	}
}
