package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/config"
)

// PlayerIdentifier holds player identification (either ID or name)
type PlayerIdentifier struct {
	PlayerID int
	Name     string
}

// IDPtr returns the player ID as the optional pointer used by queries
func (p *PlayerIdentifier) IDPtr() *int {
	if p.PlayerID <= 0 {
		return nil
	}
	id := p.PlayerID
	return &id
}

// resolvePlayerIdentifier resolves player identification from flags or defaults
// Priority: CLI flags (--player-id or --player) > User config defaults
// Returns error only if no player can be identified from any source
func resolvePlayerIdentifier() (*PlayerIdentifier, error) {
	// If explicit flags provided, use them
	if playerID > 0 {
		return &PlayerIdentifier{PlayerID: playerID}, nil
	}
	if playerName != "" {
		return &PlayerIdentifier{Name: playerName}, nil
	}

	// Try to load default player from user config
	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	// Use default player from config
	if userCfg.DefaultPlayerID != nil {
		return &PlayerIdentifier{PlayerID: *userCfg.DefaultPlayerID}, nil
	}
	if userCfg.DefaultPlayerName != "" {
		return &PlayerIdentifier{Name: userCfg.DefaultPlayerName}, nil
	}

	return nil, fmt.Errorf("no player specified: use --player-id or --player, or set default with 'shipwright config set-player'")
}

// formatMass renders tonnes with SI prefixes above a kilotonne
func formatMass(tonnes float64) string {
	if tonnes >= 1000 {
		value, prefix := humanize.ComputeSI(tonnes)
		return fmt.Sprintf("%s %st", humanize.FtoaWithDigits(value, 2), prefix)
	}
	return fmt.Sprintf("%s T", humanize.FtoaWithDigits(tonnes, 2))
}

// formatCredits renders credits with thousands separators
func formatCredits(credits int64) string {
	return humanize.Comma(credits) + " cr"
}

// formatSimulatedDuration renders a simulated span such as "2d 3h 0m 0s"
func formatSimulatedDuration(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	rest := d % (24 * time.Hour)
	if days == 0 {
		return rest.String()
	}
	return fmt.Sprintf("%dd %s", days, rest.String())
}

// joinOrDash joins values, "-" when empty
func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
