package steps

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/player"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
	"github.com/strangergwenn/AstralShipwright-sub002/test/helpers"
)

// storageContext stores the spacecraft of a spacecraftContext in the shared
// test database
type storageContext struct {
	spacecraft *spacecraftContext
	repos      *helpers.TestRepositories
	players    map[string]*player.Player
	storedID   uuid.UUID
	loaded     *spacecraft.Spacecraft
}

func (ctx *storageContext) reset() error {
	ctx.players = make(map[string]*player.Player)
	ctx.storedID = uuid.Nil
	ctx.loaded = nil
	ctx.repos = nil

	if helpers.SharedTestDB == nil {
		return nil
	}
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	ctx.repos = helpers.NewTestRepositories(ctx.spacecraft.fixture.Catalog)
	return nil
}

func (ctx *storageContext) player(name string) (*player.Player, error) {
	p, ok := ctx.players[name]
	if !ok {
		return nil, fmt.Errorf("player %s was not registered", name)
	}
	return p, nil
}

func (ctx *storageContext) aPlayerWithCredits(name string, credits int) error {
	if ctx.repos == nil {
		return fmt.Errorf("shared test database not initialized")
	}
	p := player.NewPlayer(0, name, int64(credits))
	if err := ctx.repos.PlayerRepo.Add(context.Background(), p); err != nil {
		return err
	}
	ctx.players[name] = p
	return nil
}

func (ctx *storageContext) theSpacecraftIsStoredFor(name string) error {
	owner, err := ctx.player(name)
	if err != nil {
		return err
	}
	sc, err := ctx.spacecraft.spacecraft()
	if err != nil {
		return err
	}
	if err := ctx.repos.SpacecraftRepo.Save(context.Background(), owner.ID, sc); err != nil {
		return err
	}
	ctx.storedID = sc.Identifier
	return nil
}

func (ctx *storageContext) theSpacecraftIsLoadedBackFor(name string) error {
	owner, err := ctx.player(name)
	if err != nil {
		return err
	}
	ctx.loaded, ctx.spacecraft.err = ctx.repos.SpacecraftRepo.FindByID(context.Background(), ctx.storedID, owner.ID)
	return nil
}

func (ctx *storageContext) loadedSpacecraftHolds(compartmentIndex int, amount float64, resourceID string) error {
	if ctx.loaded == nil {
		return fmt.Errorf("no spacecraft was loaded: %v", ctx.spacecraft.err)
	}
	if compartmentIndex >= len(ctx.loaded.Compartments) {
		return fmt.Errorf("the loaded spacecraft has no compartment %d", compartmentIndex)
	}
	return matchesMass(amount, spacecraftHolds(ctx.loaded, compartmentIndex, resourceID), resourceID)
}
