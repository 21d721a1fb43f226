package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

type storedSpacecraft struct {
	playerID   int
	spacecraft *spacecraft.Spacecraft
}

// MockSpacecraftRepository is an in-memory spacecraft.Repository. It stores
// clones so callers cannot mutate saved state by accident.
type MockSpacecraftRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]storedSpacecraft
	Saves int
}

// NewMockSpacecraftRepository creates an empty repository
func NewMockSpacecraftRepository() *MockSpacecraftRepository {
	return &MockSpacecraftRepository{
		items: make(map[uuid.UUID]storedSpacecraft),
	}
}

// FindByID returns a copy of the spacecraft owned by the player
func (m *MockSpacecraftRepository) FindByID(ctx context.Context, id uuid.UUID, playerID int) (*spacecraft.Spacecraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok || item.playerID != playerID {
		return nil, fmt.Errorf("spacecraft %s not found for player %d", id, playerID)
	}
	sc := item.spacecraft.Clone()
	sc.UpdateDerived()
	return sc, nil
}

// FindByPlayer returns copies of every spacecraft of the player, by name
func (m *MockSpacecraftRepository) FindByPlayer(ctx context.Context, playerID int) ([]*spacecraft.Spacecraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*spacecraft.Spacecraft
	for _, item := range m.items {
		if item.playerID == playerID {
			sc := item.spacecraft.Clone()
			sc.UpdateDerived()
			result = append(result, sc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Save stores a copy of the spacecraft
func (m *MockSpacecraftRepository) Save(ctx context.Context, playerID int, sc *spacecraft.Spacecraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[sc.Identifier] = storedSpacecraft{playerID: playerID, spacecraft: sc.Clone()}
	m.Saves++
	return nil
}

// Delete removes the spacecraft
func (m *MockSpacecraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("spacecraft %s not found", id)
	}
	delete(m.items, id)
	return nil
}
