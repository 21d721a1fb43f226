package shared

import (
	"fmt"
	"strings"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Spacecraft-related errors

type SpacecraftError struct {
	*DomainError
}

func NewSpacecraftError(message string) *SpacecraftError {
	return &SpacecraftError{DomainError: &DomainError{Message: message}}
}

// AssemblyBusyError is returned when a structural edit is attempted while the
// assembly is reconfiguring.
type AssemblyBusyError struct {
	*SpacecraftError
	State string
}

func NewAssemblyBusyError(state string) *AssemblyBusyError {
	return &AssemblyBusyError{
		SpacecraftError: NewSpacecraftError(fmt.Sprintf("assembly is %s, structural edits require an idle assembly", state)),
		State:           state,
	}
}

type InvalidSlotError struct {
	*SpacecraftError
	Compartment int
	Slot        int
}

func NewInvalidSlotError(compartment, slot int, reason string) *InvalidSlotError {
	return &InvalidSlotError{
		SpacecraftError: NewSpacecraftError(fmt.Sprintf("invalid slot %d in compartment %d: %s", slot, compartment, reason)),
		Compartment:     compartment,
		Slot:            slot,
	}
}

// DesignError aggregates every violated departure rule of a spacecraft
type DesignError struct {
	*SpacecraftError
	Issues []string
}

func NewDesignError(issues []string) *DesignError {
	return &DesignError{
		SpacecraftError: NewSpacecraftError(strings.Join(issues, "\n")),
		Issues:          issues,
	}
}

// Simulation errors

type NotAuthorityError struct {
	*DomainError
	Operation string
}

func NewNotAuthorityError(operation string) *NotAuthorityError {
	return &NotAuthorityError{
		DomainError: NewDomainError(fmt.Sprintf("%s requires simulation authority", operation)),
		Operation:   operation,
	}
}

type UnknownGroupError struct {
	*DomainError
	GroupIndex int
}

func NewUnknownGroupError(groupIndex int) *UnknownGroupError {
	return &UnknownGroupError{
		DomainError: NewDomainError(fmt.Sprintf("module group %d has no processing state", groupIndex)),
		GroupIndex:  groupIndex,
	}
}

// Catalog errors

type CatalogError struct {
	*DomainError
	Identifier string
}

func NewCatalogError(identifier, message string) *CatalogError {
	return &CatalogError{
		DomainError: NewDomainError(fmt.Sprintf("catalog entry %q: %s", identifier, message)),
		Identifier:  identifier,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
