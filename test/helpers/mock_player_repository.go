package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
)

// MockPlayerRepository is a test double for PlayerRepository interface
type MockPlayerRepository struct {
	mu      sync.RWMutex
	nextID  int
	players map[int]*player.Player    // playerID -> player
	byName  map[string]*player.Player // name -> player
}

// NewMockPlayerRepository creates a new mock player repository
func NewMockPlayerRepository() *MockPlayerRepository {
	return &MockPlayerRepository{
		nextID:  1,
		players: make(map[int]*player.Player),
		byName:  make(map[string]*player.Player),
	}
}

// AddPlayer adds a player to the mock repository
func (m *MockPlayerRepository) AddPlayer(p *player.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(p)
}

func (m *MockPlayerRepository) store(p *player.Player) {
	if p.ID == 0 {
		p.ID = m.nextID
	}
	if p.ID >= m.nextID {
		m.nextID = p.ID + 1
	}
	m.players[p.ID] = p
	m.byName[p.Name] = p
}

// FindByID retrieves a player by ID
func (m *MockPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.players[playerID]
	if !ok {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}

	return p, nil
}

// FindByName retrieves a player by name
func (m *MockPlayerRepository) FindByName(ctx context.Context, name string) (*player.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("player not found: %s", name)
	}

	return p, nil
}

// Add persists a new player and assigns its ID
func (m *MockPlayerRepository) Add(ctx context.Context, p *player.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byName[p.Name]; exists {
		return fmt.Errorf("player already exists: %s", p.Name)
	}
	m.store(p)
	return nil
}

// UpdateCredits stores the credit balance
func (m *MockPlayerRepository) UpdateCredits(ctx context.Context, playerID int, credits int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[playerID]
	if !ok {
		return fmt.Errorf("player not found: %d", playerID)
	}
	p.Credits = credits
	return nil
}
