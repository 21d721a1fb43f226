package processing

import "fmt"

// Status is the state of a processing chain or mining rig
type Status int

const (
	StatusStopped Status = iota
	StatusProcessing
	StatusBlocked
	StatusPowerLoss
	StatusDocked
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusProcessing:
		return "Processing"
	case StatusBlocked:
		return "Blocked"
	case StatusPowerLoss:
		return "PowerLoss"
	case StatusDocked:
		return "Docked"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus converts a status name back into a Status
func ParseStatus(value string) (Status, error) {
	for s := StatusStopped; s <= StatusDocked; s++ {
		if s.String() == value {
			return s, nil
		}
	}
	return StatusStopped, fmt.Errorf("unknown processing status %q", value)
}
