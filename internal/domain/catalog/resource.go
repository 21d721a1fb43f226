package catalog

import "fmt"

// ResourceType describes how a resource is stored
type ResourceType int

const (
	ResourceTypeGeneral ResourceType = iota
	ResourceTypeBulk
	ResourceTypeLiquid
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeGeneral:
		return "general"
	case ResourceTypeBulk:
		return "bulk"
	case ResourceTypeLiquid:
		return "liquid"
	default:
		return fmt.Sprintf("ResourceType(%d)", int(t))
	}
}

// ParseResourceType converts a catalog string into a ResourceType
func ParseResourceType(value string) (ResourceType, error) {
	switch value {
	case "general":
		return ResourceTypeGeneral, nil
	case "bulk", "":
		return ResourceTypeBulk, nil
	case "liquid":
		return ResourceTypeLiquid, nil
	default:
		return ResourceTypeBulk, fmt.Errorf("unknown resource type %q", value)
	}
}

// Resource is an immutable description of a tradable substance
type Resource struct {
	Identifier  string
	Name        string
	Description string
	Type        ResourceType
}

// ResourceSet is an ordered set of resources, compared by identity
type ResourceSet []*Resource

// Contains reports whether the set holds the resource
func (s ResourceSet) Contains(resource *Resource) bool {
	for _, candidate := range s {
		if candidate == resource {
			return true
		}
	}
	return false
}

// Intersects reports whether both sets share at least one resource
func (s ResourceSet) Intersects(other ResourceSet) bool {
	for _, candidate := range s {
		if other.Contains(candidate) {
			return true
		}
	}
	return false
}

// Union returns the resources of both sets, preserving first-seen order
func (s ResourceSet) Union(other ResourceSet) ResourceSet {
	result := make(ResourceSet, 0, len(s)+len(other))
	result = append(result, s...)
	for _, candidate := range other {
		if !result.Contains(candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

// Without returns the set minus the resources in other
func (s ResourceSet) Without(other ResourceSet) ResourceSet {
	result := make(ResourceSet, 0, len(s))
	for _, candidate := range s {
		if !other.Contains(candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

// Identifiers lists the identifiers of the set
func (s ResourceSet) Identifiers() []string {
	ids := make([]string, len(s))
	for i, resource := range s {
		ids[i] = resource.Identifier
	}
	return ids
}
