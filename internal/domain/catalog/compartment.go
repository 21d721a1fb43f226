package catalog

// ModuleSlot is a module socket inside a compartment
type ModuleSlot struct {
	Name             string
	SocketName       string
	LinkedEquipments []string
	ForceSkirtPiping bool
}

// EquipmentSlot is an equipment socket on a compartment hull
type EquipmentSlot struct {
	Name           string
	SocketName     string
	SupportedTypes []EquipmentType
}

// Supports reports whether equipment can be mounted in the slot
func (s EquipmentSlot) Supports(equipment *EquipmentDescription) bool {
	if equipment == nil {
		return true
	}
	for _, supported := range s.SupportedTypes {
		if supported == equipment.Type {
			return true
		}
	}
	return false
}

// EquipmentSlotGroup lists symmetrical sockets that must hold paired equipment
type EquipmentSlotGroup struct {
	SocketNames []string
}

// CompartmentDescription is an immutable catalog entry for a hull segment
type CompartmentDescription struct {
	Identifier          string
	Name                string
	Mass                float64
	ModuleSlots         []ModuleSlot
	EquipmentSlots      []EquipmentSlot
	EquipmentSlotGroups []EquipmentSlotGroup
}

// ModuleSlotIndex returns the index of the module slot with the socket name, or -1
func (c *CompartmentDescription) ModuleSlotIndex(socketName string) int {
	for i, slot := range c.ModuleSlots {
		if slot.SocketName == socketName {
			return i
		}
	}
	return -1
}

// EquipmentSlotIndex returns the index of the equipment slot with the socket name, or -1
func (c *CompartmentDescription) EquipmentSlotIndex(socketName string) int {
	for i, slot := range c.EquipmentSlots {
		if slot.SocketName == socketName {
			return i
		}
	}
	return -1
}
