package spacecraft

import "github.com/strangergwenn/AstralShipwright-sub002/internal/domain/catalog"

// Cargo is the content of one module slot.
// Resource is nil exactly when Amount is zero.
type Cargo struct {
	Resource *catalog.Resource
	Amount   float64
}

// IsEmpty reports whether the slot holds nothing
func (c Cargo) IsEmpty() bool {
	return c.Resource == nil
}

// Holds reports whether the slot currently stores the resource
func (c Cargo) Holds(resource *catalog.Resource) bool {
	return c.Resource != nil && c.Resource == resource
}

// Headroom returns the mass that still fits given the slot capacity
func (c Cargo) Headroom(capacity float64) float64 {
	if capacity <= c.Amount {
		return 0
	}
	return capacity - c.Amount
}

// CompartmentModule is a module slot: an optional description plus its cargo
type CompartmentModule struct {
	Description *catalog.ModuleDescription
	Cargo       Cargo
}
