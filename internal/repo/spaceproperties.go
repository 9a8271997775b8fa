package repo

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Terrain classifies a space's movement cost (spec §3, §4.4).
type Terrain string

// Terrain kinds.
const (
	TerrainNormal     Terrain = "NORMAL"
	TerrainDifficult  Terrain = "DIFFICULT"
	TerrainHazardous  Terrain = "HAZARDOUS"
	TerrainImpassable Terrain = "IMPASSABLE"
)

// ConditionKind is the discriminant of an Exit's gating Condition.
type ConditionKind string

// Condition kinds.
const (
	ConditionSkillCheck   ConditionKind = "SkillCheck"
	ConditionItemRequired ConditionKind = "ItemRequired"
	ConditionFlagEquals   ConditionKind = "FlagEquals"
)

// Condition gates traversal of an Exit (spec §3).
type Condition struct {
	Kind ConditionKind `json:"kind"`
	// SkillCheck: StatOrSkill + DC. ItemRequired: TemplateID. FlagEquals: Name + Value.
	StatOrSkill string `json:"statOrSkill,omitempty"`
	DC          int    `json:"dc,omitempty"`
	TemplateID  string `json:"templateId,omitempty"`
	Name        string `json:"name,omitempty"`
	Value       string `json:"value,omitempty"`
}

// Exit describes one way out of a space (spec §3).
type Exit struct {
	TargetID        string      `json:"targetId"`
	Direction       string      `json:"direction"`
	Description     string      `json:"description"`
	Conditions      []Condition `json:"conditions"`
	Hidden          bool        `json:"hidden"`
	HiddenDifficulty int        `json:"hiddenDifficulty,omitempty"`
}

// Trap is a triggerable hazard placed in a space.
type Trap struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Difficulty int    `json:"difficulty"`
	Triggered  bool   `json:"triggered"`
}

// ResourceNode is a harvestable node placed in a space.
type ResourceNode struct {
	ID          string `json:"id"`
	TemplateID  string `json:"templateId"`
	Quantity    int    `json:"quantity"`
	RespawnTime *int   `json:"respawnTime,omitempty"`
}

// SpaceProperties is the content attached to a SPACE chunk (spec §3).
type SpaceProperties struct {
	ChunkID        string
	Name           string
	Description    string
	Exits          []Exit
	Brightness     int
	Terrain        Terrain
	Traps          []Trap
	ResourceNodes  []ResourceNode
	Entities       []string
	Items          []string
	Flags          map[string]bool
	IsSafeZone     bool
	IsTreasureRoom bool
}

// SpacePropertiesRepository persists per-SPACE content.
type SpacePropertiesRepository struct {
	db *DB
}

// NewSpacePropertiesRepository constructs a SpacePropertiesRepository over db.
func NewSpacePropertiesRepository(db *DB) *SpacePropertiesRepository {
	return &SpacePropertiesRepository{db: db}
}

func marshalAll(vs ...any) ([]string, error) {
	out := make([]string, len(vs))
	for i, v := range vs {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[i] = string(b)
	}
	return out, nil
}

// Save upserts a space's properties.
func (r *SpacePropertiesRepository) Save(ctx context.Context, p SpaceProperties) error {
	blobs, err := marshalAll(p.Exits, p.Traps, p.ResourceNodes, p.Entities, p.Items, p.Flags)
	if err != nil {
		return wrapErr("SpacePropertiesRepository.Save", err)
	}
	sqlStr, args, err := builder.Insert("space_properties").
		Columns("chunk_id", "name", "description", "exits", "brightness", "terrain",
			"traps", "resource_nodes", "entities", "items", "flags", "is_safe_zone", "is_treasure_room").
		Values(p.ChunkID, p.Name, p.Description, blobs[0], p.Brightness, string(p.Terrain),
			blobs[1], blobs[2], blobs[3], blobs[4], blobs[5], p.IsSafeZone, p.IsTreasureRoom).
		Suffix(`ON CONFLICT(chunk_id) DO UPDATE SET
			name=excluded.name, description=excluded.description, exits=excluded.exits,
			brightness=excluded.brightness, terrain=excluded.terrain, traps=excluded.traps,
			resource_nodes=excluded.resource_nodes, entities=excluded.entities, items=excluded.items,
			flags=excluded.flags, is_safe_zone=excluded.is_safe_zone, is_treasure_room=excluded.is_treasure_room`).
		ToSql()
	if err != nil {
		return wrapErr("SpacePropertiesRepository.Save", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("SpacePropertiesRepository.Save", err)
	}
	return nil
}

var spacePropColumns = []string{"chunk_id", "name", "description", "exits", "brightness", "terrain",
	"traps", "resource_nodes", "entities", "items", "flags", "is_safe_zone", "is_treasure_room"}

func scanSpaceProperties(scan func(dest ...any) error) (*SpaceProperties, error) {
	var p SpaceProperties
	var terrain string
	var exits, traps, resourceNodes, entities, items, flags string
	if err := scan(&p.ChunkID, &p.Name, &p.Description, &exits, &p.Brightness, &terrain,
		&traps, &resourceNodes, &entities, &items, &flags, &p.IsSafeZone, &p.IsTreasureRoom); err != nil {
		return nil, err
	}
	p.Terrain = Terrain(terrain)
	if err := json.Unmarshal([]byte(exits), &p.Exits); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(traps), &p.Traps); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(resourceNodes), &p.ResourceNodes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(entities), &p.Entities); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(flags), &p.Flags); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByChunkID returns a space's properties, or (nil, nil) if unset.
func (r *SpacePropertiesRepository) FindByChunkID(ctx context.Context, chunkID string) (*SpaceProperties, error) {
	sqlStr, args, err := builder.Select(spacePropColumns...).From("space_properties").
		Where("chunk_id = ?", chunkID).ToSql()
	if err != nil {
		return nil, wrapErr("SpacePropertiesRepository.FindByChunkID", err)
	}
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	p, err := scanSpaceProperties(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("SpacePropertiesRepository.FindByChunkID", err)
	}
	return p, nil
}

// UpdateDescription sets a space's description.
func (r *SpacePropertiesRepository) UpdateDescription(ctx context.Context, chunkID, description string) error {
	sqlStr, args, err := builder.Update("space_properties").
		Set("description", description).Where("chunk_id = ?", chunkID).ToSql()
	if err != nil {
		return wrapErr("SpacePropertiesRepository.UpdateDescription", err)
	}
	return execUpdate(ctx, r.db, "SpacePropertiesRepository.UpdateDescription", sqlStr, args)
}

// UpdateFlags replaces a space's boolean flag map.
func (r *SpacePropertiesRepository) UpdateFlags(ctx context.Context, chunkID string, flags map[string]bool) error {
	b, err := json.Marshal(flags)
	if err != nil {
		return wrapErr("SpacePropertiesRepository.UpdateFlags", err)
	}
	sqlStr, args, err := builder.Update("space_properties").
		Set("flags", string(b)).Where("chunk_id = ?", chunkID).ToSql()
	if err != nil {
		return wrapErr("SpacePropertiesRepository.UpdateFlags", err)
	}
	return execUpdate(ctx, r.db, "SpacePropertiesRepository.UpdateFlags", sqlStr, args)
}

// AddItems appends item instance ids to a space's floor items.
func (r *SpacePropertiesRepository) AddItems(ctx context.Context, chunkID string, itemIDs []string) error {
	existing, err := r.FindByChunkID(ctx, chunkID)
	if err != nil {
		return err
	}
	if existing == nil {
		return wrapErr("SpacePropertiesRepository.AddItems", sql.ErrNoRows)
	}
	existing.Items = append(existing.Items, itemIDs...)
	b, err := json.Marshal(existing.Items)
	if err != nil {
		return wrapErr("SpacePropertiesRepository.AddItems", err)
	}
	sqlStr, args, err := builder.Update("space_properties").
		Set("items", string(b)).Where("chunk_id = ?", chunkID).ToSql()
	if err != nil {
		return wrapErr("SpacePropertiesRepository.AddItems", err)
	}
	return execUpdate(ctx, r.db, "SpacePropertiesRepository.AddItems", sqlStr, args)
}

// Delete removes a space's properties row.
func (r *SpacePropertiesRepository) Delete(ctx context.Context, chunkID string) error {
	sqlStr, args, err := builder.Delete("space_properties").Where("chunk_id = ?", chunkID).ToSql()
	if err != nil {
		return wrapErr("SpacePropertiesRepository.Delete", err)
	}
	return execUpdate(ctx, r.db, "SpacePropertiesRepository.Delete", sqlStr, args)
}

func execUpdate(ctx context.Context, db *DB, op, sqlStr string, args []any) error {
	if _, err := db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr(op, err)
	}
	return nil
}
