package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

// LoadResult reports what Load hydrated into the store, plus the decayed
// corpses it reaped and any tables it could not fully read (spec §7).
type LoadResult struct {
	Seed           repo.WorldSeed
	StartingSpace  *repo.SpaceProperties
	SubzoneGraph   []*repo.GraphNode
	NeighborSpaces []*repo.SpaceProperties
	EntitiesLoaded int
	DecayedCorpses int
	Failures       []string
}

// Load reads the world seed, resolves and hydrates the starting space and
// its exit neighbors, rehydrates every persisted entity with its volatile
// components, and lazily reaps past-due corpse decay (spec §4.11, §7).
func (c *Coordinator) Load(ctx context.Context) (*LoadResult, error) {
	seed, err := c.Seeds.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("persistence: load world seed: %w", err)
	}
	if seed == nil {
		return nil, rpgerr.New(rpgerr.CodeNotFoundEntity, "persistence: world has not been initialized")
	}
	result := &LoadResult{Seed: *seed}

	startChunk, err := c.Chunks.FindByID(ctx, seed.StartingSpaceID)
	if err != nil {
		return nil, fmt.Errorf("persistence: load starting chunk: %w", err)
	}
	if startChunk == nil {
		return nil, rpgerr.Newf(rpgerr.CodeNotFoundEntity, "persistence: starting chunk %s not found", seed.StartingSpaceID)
	}
	if startChunk.Level != repo.LevelSpace {
		return nil, rpgerr.Newf(rpgerr.CodeCorrupt, "persistence: starting chunk %s is level %s, want SPACE", startChunk.ID, startChunk.Level)
	}

	startSpace, err := c.Spaces.FindByChunkID(ctx, startChunk.ID)
	if err != nil {
		return nil, fmt.Errorf("persistence: load starting space: %w", err)
	}
	result.StartingSpace = startSpace

	if startChunk.ParentID != "" {
		nodes, err := c.Nodes.FindByChunk(ctx, startChunk.ParentID)
		if err != nil {
			result.Failures = append(result.Failures, "graph_node:"+startChunk.ParentID)
			c.Log.Warn("persistence: prefetch subzone graph failed", zap.String("subzone", startChunk.ParentID), zap.Error(err))
		} else {
			result.SubzoneGraph = nodes
		}
	}

	if startSpace != nil {
		for _, exit := range startSpace.Exits {
			neighbor, err := c.Spaces.FindByChunkID(ctx, exit.TargetID)
			if err != nil {
				result.Failures = append(result.Failures, "space_properties:"+exit.TargetID)
				c.Log.Warn("persistence: prefetch exit neighbor failed", zap.String("chunk", exit.TargetID), zap.Error(err))
				continue
			}
			if neighbor != nil {
				result.NeighborSpaces = append(result.NeighborSpaces, neighbor)
			}
		}
	}

	if err := c.hydrateEntities(ctx, result); err != nil {
		result.Failures = append(result.Failures, "entity")
		c.Log.Warn("persistence: hydrate entities failed", zap.Error(err))
	}

	if err := c.reapDecayedCorpses(ctx, result); err != nil {
		result.Failures = append(result.Failures, "corpse")
		c.Log.Warn("persistence: reap decayed corpses failed", zap.Error(err))
	}

	return result, nil
}

// hydrateEntities rebuilds every persisted entity's base fields and
// re-attaches its volatile components from the generic snapshot table.
func (c *Coordinator) hydrateEntities(ctx context.Context, result *LoadResult) error {
	rows, err := c.Entities.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("persistence: read entity rows: %w", err)
	}

	snapshots, err := c.Snapshots.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("persistence: read entity snapshots: %w", err)
	}
	byEntity := make(map[string][]repo.EntitySnapshot, len(snapshots))
	for _, s := range snapshots {
		byEntity[s.EntityID] = append(byEntity[s.EntityID], s)
	}

	for _, row := range rows {
		e := store.NewEntity(row.ID, core.EntityKind(row.Kind), row.Name, row.Description, row.SpaceID)
		for _, snap := range byEntity[row.ID] {
			decode, ok := snapshotDecoders[core.ComponentKind(snap.ComponentKind)]
			if !ok {
				result.Failures = append(result.Failures, fmt.Sprintf("entity_snapshot:%s:%s", row.ID, snap.ComponentKind))
				continue
			}
			comp, err := decode([]byte(snap.Data))
			if err != nil {
				result.Failures = append(result.Failures, fmt.Sprintf("entity_snapshot:%s:%s", row.ID, snap.ComponentKind))
				c.Log.Warn("persistence: decode component failed",
					zap.String("entity", row.ID), zap.String("kind", snap.ComponentKind), zap.Error(err))
				continue
			}
			e = e.WithComponent(comp)
		}
		c.Store.Replace(e)
		result.EntitiesLoaded++
	}
	return nil
}

// reapDecayedCorpses removes corpses whose decay deadline has passed,
// freeing their space's floor presence (spec §7: "Corpses with past-due
// decay are lazily removed at load time").
func (c *Coordinator) reapDecayedCorpses(ctx context.Context, result *LoadResult) error {
	decayed, err := c.Corpses.FindDecayed(ctx, c.NowTick())
	if err != nil {
		return fmt.Errorf("persistence: find decayed corpses: %w", err)
	}
	for _, corpse := range decayed {
		if err := c.Corpses.Delete(ctx, corpse.ID); err != nil {
			result.Failures = append(result.Failures, "corpse:"+corpse.ID)
			c.Log.Warn("persistence: delete decayed corpse failed", zap.String("corpse", corpse.ID), zap.Error(err))
			continue
		}
		result.DecayedCorpses++
	}
	return nil
}
