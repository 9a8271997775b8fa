package repo

import (
	"context"
	"database/sql"
	"encoding/json"
)

// ChunkLevel is a level in the WORLD ⊃ REGION ⊃ ZONE ⊃ SUBZONE ⊃ SPACE
// hierarchy (spec §3).
type ChunkLevel string

// Chunk levels, outermost to innermost.
const (
	LevelWorld   ChunkLevel = "WORLD"
	LevelRegion  ChunkLevel = "REGION"
	LevelZone    ChunkLevel = "ZONE"
	LevelSubzone ChunkLevel = "SUBZONE"
	LevelSpace   ChunkLevel = "SPACE"
)

// WorldChunk is one node of the chunk hierarchy.
type WorldChunk struct {
	ID             string
	Level          ChunkLevel
	ParentID       string // "" only for WORLD
	Children       []string
	Lore           string
	BiomeTheme     string
	SizeEstimate   string
	MobDensity     float64
	DifficultyTier int
	Adjacency      map[string]string // direction -> neighbor chunk id
}

// WorldChunkRepository persists the chunk hierarchy.
type WorldChunkRepository struct {
	db *DB
}

// NewWorldChunkRepository constructs a WorldChunkRepository over db.
func NewWorldChunkRepository(db *DB) *WorldChunkRepository {
	return &WorldChunkRepository{db: db}
}

func (r *WorldChunkRepository) row(c WorldChunk) (map[string]any, error) {
	children, err := json.Marshal(c.Children)
	if err != nil {
		return nil, err
	}
	adjacency, err := json.Marshal(c.Adjacency)
	if err != nil {
		return nil, err
	}
	var parentID any
	if c.ParentID != "" {
		parentID = c.ParentID
	}
	return map[string]any{
		"id":              c.ID,
		"level":           string(c.Level),
		"parent_id":       parentID,
		"children":        string(children),
		"lore":            c.Lore,
		"biome_theme":     c.BiomeTheme,
		"size_estimate":   c.SizeEstimate,
		"mob_density":     c.MobDensity,
		"difficulty_tier": c.DifficultyTier,
		"adjacency":       string(adjacency),
	}, nil
}

// Save upserts a chunk.
func (r *WorldChunkRepository) Save(ctx context.Context, c WorldChunk) error {
	cols, err := r.row(c)
	if err != nil {
		return wrapErr("WorldChunkRepository.Save", err)
	}
	q := builder.Insert("world_chunk").SetMap(cols).Suffix(`
		ON CONFLICT(id) DO UPDATE SET
			level=excluded.level, parent_id=excluded.parent_id, children=excluded.children,
			lore=excluded.lore, biome_theme=excluded.biome_theme, size_estimate=excluded.size_estimate,
			mob_density=excluded.mob_density, difficulty_tier=excluded.difficulty_tier, adjacency=excluded.adjacency`)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return wrapErr("WorldChunkRepository.Save", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("WorldChunkRepository.Save", err)
	}
	return nil
}

func scanChunk(scan func(dest ...any) error) (*WorldChunk, error) {
	var c WorldChunk
	var parentID sql.NullString
	var children, adjacency string
	var level string
	if err := scan(&c.ID, &level, &parentID, &children, &c.Lore, &c.BiomeTheme,
		&c.SizeEstimate, &c.MobDensity, &c.DifficultyTier, &adjacency); err != nil {
		return nil, err
	}
	c.Level = ChunkLevel(level)
	c.ParentID = parentID.String
	if err := json.Unmarshal([]byte(children), &c.Children); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(adjacency), &c.Adjacency); err != nil {
		return nil, err
	}
	return &c, nil
}

var chunkColumns = []string{"id", "level", "parent_id", "children", "lore", "biome_theme",
	"size_estimate", "mob_density", "difficulty_tier", "adjacency"}

// FindByID returns a chunk by id, or (nil, nil) if absent.
func (r *WorldChunkRepository) FindByID(ctx context.Context, id string) (*WorldChunk, error) {
	sqlStr, args, err := builder.Select(chunkColumns...).From("world_chunk").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, wrapErr("WorldChunkRepository.FindByID", err)
	}
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	c, err := scanChunk(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("WorldChunkRepository.FindByID", err)
	}
	return c, nil
}

// FindByParent returns all children of parentID, ordered by id.
func (r *WorldChunkRepository) FindByParent(ctx context.Context, parentID string) ([]*WorldChunk, error) {
	sqlStr, args, err := builder.Select(chunkColumns...).From("world_chunk").
		Where("parent_id = ?", parentID).OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("WorldChunkRepository.FindByParent", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("WorldChunkRepository.FindByParent", err)
	}
	defer rows.Close()

	var out []*WorldChunk
	for rows.Next() {
		c, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, wrapErr("WorldChunkRepository.FindByParent", err)
		}
		out = append(out, c)
	}
	return out, wrapErr("WorldChunkRepository.FindByParent", rows.Err())
}

// FindAdjacent resolves the neighbor chunk id stored for direction on
// currentID's adjacency map, returning (nil, nil) if there is none.
func (r *WorldChunkRepository) FindAdjacent(ctx context.Context, currentID, direction string) (*WorldChunk, error) {
	current, err := r.FindByID(ctx, currentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	neighborID, ok := current.Adjacency[direction]
	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, neighborID)
}

// Delete removes a chunk by id.
func (r *WorldChunkRepository) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.Delete("world_chunk").Where("id = ?", id).ToSql()
	if err != nil {
		return wrapErr("WorldChunkRepository.Delete", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("WorldChunkRepository.Delete", err)
	}
	return nil
}

// GetAll returns every chunk in the database, ordered by id.
func (r *WorldChunkRepository) GetAll(ctx context.Context) ([]*WorldChunk, error) {
	sqlStr, args, err := builder.Select(chunkColumns...).From("world_chunk").OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("WorldChunkRepository.GetAll", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("WorldChunkRepository.GetAll", err)
	}
	defer rows.Close()

	var out []*WorldChunk
	for rows.Next() {
		c, err := scanChunk(rows.Scan)
		if err != nil {
			return nil, wrapErr("WorldChunkRepository.GetAll", err)
		}
		out = append(out, c)
	}
	return out, wrapErr("WorldChunkRepository.GetAll", rows.Err())
}
