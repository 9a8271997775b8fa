package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kirkdiggler/dungeonmaster/internal/config"
	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
	"github.com/kirkdiggler/dungeonmaster/internal/world"
)

// loadOrBootstrap loads an existing save's world and player, or, if this
// save has never been initialized, materializes a starting region/zone/
// subzone/space and a fresh player entity (spec §4.3, §4.11). It returns
// the id of the player entity the REPL should drive.
func loadOrBootstrap(ctx context.Context, w *world.World, cfg *config.Config) (string, error) {
	_, err := w.Persist.Load(ctx)
	switch {
	case err == nil:
		return findPlayer(w)
	case rpgerr.GetCode(err) == rpgerr.CodeNotFoundEntity:
		return bootstrapNewGame(ctx, w, cfg)
	default:
		return "", err
	}
}

// findPlayer returns the id of the (single-player) world's Player entity.
func findPlayer(w *world.World) (string, error) {
	for _, e := range w.Store.All() {
		if e.Kind == core.KindPlayer {
			return e.ID, nil
		}
	}
	return "", fmt.Errorf("save has no player entity")
}

// bootstrapNewGame materializes just enough of the world graph to have a
// starting space (spec §4.3: region -> zone -> subzone -> space, lazily on
// first entry), places a new player entity there, and persists the world
// seed row Load depends on.
func bootstrapNewGame(ctx context.Context, w *world.World, cfg *config.Config) (string, error) {
	worldChunk, err := w.WorldGen.EnsureWorld(ctx, regionCount)
	if err != nil {
		return "", fmt.Errorf("materialize world: %w", err)
	}
	if len(worldChunk.Children) == 0 {
		return "", fmt.Errorf("bootstrap: world has no regions")
	}

	zone, err := w.WorldGen.EnsureZone(ctx, worldChunk.Children[0], "start", 0)
	if err != nil {
		return "", fmt.Errorf("materialize starting zone: %w", err)
	}
	subzone, err := w.WorldGen.EnsureSubzone(ctx, zone.ID, "start", 0)
	if err != nil {
		return "", fmt.Errorf("materialize starting subzone: %w", err)
	}

	nodes, err := w.WorldGen.Nodes().FindByChunk(ctx, subzone.ID)
	if err != nil {
		return "", fmt.Errorf("read starting subzone graph: %w", err)
	}
	hub := hubNode(nodes)
	if hub == nil {
		return "", fmt.Errorf("bootstrap: starting subzone has no Hub node")
	}

	if _, err := w.WorldGen.EnsureSpace(ctx, hub.ID); err != nil {
		return "", fmt.Errorf("materialize starting space: %w", err)
	}

	playerID := uuid.NewString()
	actor := store.NewEntity(playerID, core.KindPlayer, playerName, "An adventurer just arrived in the dungeon.", hub.ID)
	w.Store.Replace(actor)

	seed := repo.WorldSeed{Seed: cfg.WorldSeed, GlobalLore: worldChunk.Lore, StartingSpaceID: hub.ID}
	if err := w.Persist.Seeds.Save(ctx, seed); err != nil {
		return "", fmt.Errorf("save world seed: %w", err)
	}

	if _, err := w.Persist.Snapshot(ctx); err != nil {
		return "", fmt.Errorf("save new player: %w", err)
	}

	return playerID, nil
}

func hubNode(nodes []*repo.GraphNode) *repo.GraphNode {
	for _, n := range nodes {
		if n.NodeType == repo.NodeHub {
			return n
		}
	}
	return nil
}
