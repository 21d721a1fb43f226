package shared

import (
	"fmt"
	"time"
)

// AssemblyStatus represents the state of a spacecraft assembly
type AssemblyStatus string

const (
	// AssemblyStatusIdle accepts structural edits
	AssemblyStatusIdle AssemblyStatus = "IDLE"

	// AssemblyStatusReconfiguring is playing a structural change and rejects edits
	AssemblyStatusReconfiguring AssemblyStatus = "RECONFIGURING"
)

// AssemblyStateMachine tracks whether a spacecraft assembly can accept
// structural edits.
//
// Invariants:
// - Edits are legal only in IDLE
// - A reconfiguration must complete before another one starts
// - Clock is injected for testability
type AssemblyStateMachine struct {
	status               AssemblyStatus
	updatedAt            time.Time
	reconfigurationStart *time.Time
	reconfigurations     int
	clock                Clock
}

// NewAssemblyStateMachine creates an idle assembly state machine
func NewAssemblyStateMachine(clock Clock) *AssemblyStateMachine {
	if clock == nil {
		clock = NewRealClock()
	}

	return &AssemblyStateMachine{
		status:    AssemblyStatusIdle,
		updatedAt: clock.Now(),
		clock:     clock,
	}
}

// Status returns the current assembly status
func (sm *AssemblyStateMachine) Status() AssemblyStatus {
	return sm.status
}

// UpdatedAt returns when the status last changed
func (sm *AssemblyStateMachine) UpdatedAt() time.Time {
	return sm.updatedAt
}

// Reconfigurations returns how many reconfigurations completed
func (sm *AssemblyStateMachine) Reconfigurations() int {
	return sm.reconfigurations
}

// IsIdle returns true when structural edits are accepted
func (sm *AssemblyStateMachine) IsIdle() bool {
	return sm.status == AssemblyStatusIdle
}

// BeginReconfiguration transitions from IDLE to RECONFIGURING
func (sm *AssemblyStateMachine) BeginReconfiguration() error {
	if sm.status != AssemblyStatusIdle {
		return fmt.Errorf("cannot begin reconfiguration from %s state", sm.status)
	}

	now := sm.clock.Now()
	sm.status = AssemblyStatusReconfiguring
	sm.reconfigurationStart = &now
	sm.updatedAt = now
	return nil
}

// CompleteReconfiguration transitions from RECONFIGURING back to IDLE
func (sm *AssemblyStateMachine) CompleteReconfiguration() error {
	if sm.status != AssemblyStatusReconfiguring {
		return fmt.Errorf("cannot complete reconfiguration from %s state", sm.status)
	}

	sm.status = AssemblyStatusIdle
	sm.reconfigurationStart = nil
	sm.reconfigurations++
	sm.updatedAt = sm.clock.Now()
	return nil
}

// ReconfigurationDuration returns how long the current reconfiguration has
// been running, 0 when idle
func (sm *AssemblyStateMachine) ReconfigurationDuration() time.Duration {
	if sm.reconfigurationStart == nil {
		return 0
	}
	return sm.clock.Now().Sub(*sm.reconfigurationStart)
}

// RequireIdle returns an AssemblyBusyError unless the assembly is idle
func (sm *AssemblyStateMachine) RequireIdle() error {
	if sm.status != AssemblyStatusIdle {
		return NewAssemblyBusyError(string(sm.status))
	}
	return nil
}
