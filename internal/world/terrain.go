package world

import (
	"context"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// terrainLookup satisfies nav.TerrainLookup by reading a destination
// space's materialized Terrain field straight out of SpacePropertiesRepository.
type terrainLookup struct {
	spaces *repo.SpacePropertiesRepository
}

// TerrainFor implements nav.TerrainLookup. A destination with no
// materialized space yet (not generated) costs a normal move: worldgen
// generates space properties lazily, so an unvisited neighbor should not
// be penalized before it exists.
func (t *terrainLookup) TerrainFor(ctx context.Context, chunkID string) (repo.Terrain, error) {
	props, err := t.spaces.FindByChunkID(ctx, chunkID)
	if err != nil {
		return repo.TerrainNormal, err
	}
	if props == nil {
		return repo.TerrainNormal, nil
	}
	return props.Terrain, nil
}
