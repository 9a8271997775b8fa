package combat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// DeathConfig tunes death consequences (spec §4.6: "respawns at nearest
// safe zone with reduced (configurable) health and partial gold loss").
type DeathConfig struct {
	RespawnHPFraction float64 // fraction of MaxHP restored on respawn
	GoldLossFraction  float64 // fraction of gold lost on death
	CorpseDecayTicks  int64   // ticks until a corpse is eligible for cleanup
}

// DefaultDeathConfig matches the spec's "configurable" defaults: half HP,
// a quarter of gold, and a day's worth of ticks before decay.
var DefaultDeathConfig = DeathConfig{
	RespawnHPFraction: 0.5,
	GoldLossFraction:  0.25,
	CorpseDecayTicks:  86400,
}

// PlayerDeathResult carries what the caller needs to apply post-death
// consequences: the persisted corpse, the player's new HP, and gold lost.
type PlayerDeathResult struct {
	Corpse      repo.Corpse
	RespawnHP   int
	GoldLost    int
	GoldRemaining int
}

// HandlePlayerDeath snapshots inventory/equipment into a Corpse row and
// computes the respawn state (spec §4.6: "Player at 0 HP -> drop a Corpse
// snapshot; player respawns at nearest safe zone with reduced health and
// partial gold loss; quest progress preserved" — quest progress is
// untouched here since it lives outside the Combat component).
func HandlePlayerDeath(
	ctx context.Context,
	corpses *repo.CorpseRepository,
	cfg DeathConfig,
	corpseID, playerID, spaceID string,
	maxHP, goldBefore int,
	inventorySnapshot, equipmentSnapshot map[string]any,
	nowTick int64,
) (PlayerDeathResult, error) {
	goldLost := int(float64(goldBefore) * cfg.GoldLossFraction)
	goldRemaining := goldBefore - goldLost

	corpse := repo.Corpse{
		ID:                corpseID,
		PlayerID:          playerID,
		SpaceID:           spaceID,
		InventorySnapshot: inventorySnapshot,
		EquipmentSnapshot: equipmentSnapshot,
		GoldSnapshot:      goldLost,
		DecayDeadline:     nowTick + cfg.CorpseDecayTicks,
	}

	if err := corpses.Create(ctx, corpse); err != nil {
		return PlayerDeathResult{}, fmt.Errorf("combat: create death corpse: %w", err)
	}

	respawnHP := int(float64(maxHP) * cfg.RespawnHPFraction)
	if respawnHP < 1 {
		respawnHP = 1
	}

	return PlayerDeathResult{
		Corpse:        corpse,
		RespawnHP:     respawnHP,
		GoldLost:      goldLost,
		GoldRemaining: goldRemaining,
	}, nil
}

// HandleNPCDeath persists dropped loot on a Corpse row keyed by the NPC's
// own entity id (spec §4.6: "NPC at 0 HP -> removed from space, loot
// dropped or placed on corpse"). repo.Corpse's PlayerID column is reused
// as a generic "owner id" here rather than adding a parallel NPC-corpse
// table, since the row shape (snapshot + space + decay) is identical.
func HandleNPCDeath(
	ctx context.Context,
	corpses *repo.CorpseRepository,
	cfg DeathConfig,
	corpseID, npcID, spaceID string,
	loot map[string]any,
	nowTick int64,
) (repo.Corpse, error) {
	corpse := repo.Corpse{
		ID:                corpseID,
		PlayerID:          npcID,
		SpaceID:           spaceID,
		InventorySnapshot: loot,
		EquipmentSnapshot: map[string]any{},
		DecayDeadline:     nowTick + cfg.CorpseDecayTicks,
	}

	if err := corpses.Create(ctx, corpse); err != nil {
		return repo.Corpse{}, fmt.Errorf("combat: create npc loot corpse: %w", err)
	}

	return corpse, nil
}

// EncodeSnapshot is a small helper so callers can build InventorySnapshot/
// EquipmentSnapshot maps from a typed value without round-tripping through
// the repository layer's own JSON encoding twice.
func EncodeSnapshot(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("combat: encode snapshot: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("combat: decode snapshot: %w", err)
	}
	return out, nil
}
