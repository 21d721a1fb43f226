package player

import (
	"fmt"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// Player owns spacecraft and pays their crews
type Player struct {
	ID       int
	Name     string
	Credits  int64
	Metadata map[string]interface{}
}

// NewPlayer creates a new player
func NewPlayer(id int, name string, credits int64) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Credits:  credits,
		Metadata: make(map[string]interface{}),
	}
}

// Balance returns the credits held by the player
func (p *Player) Balance() int64 {
	return p.Credits
}

// Spend removes credits, refusing to go negative
func (p *Player) Spend(amount int64) error {
	if amount < 0 {
		return shared.NewValidationError("amount", "must not be negative")
	}
	if amount > p.Credits {
		return shared.NewDomainError(fmt.Sprintf("insufficient credits: need %d, have %d", amount, p.Credits))
	}
	p.Credits -= amount
	return nil
}

// Earn adds credits
func (p *Player) Earn(amount int64) {
	if amount > 0 {
		p.Credits += amount
	}
}
