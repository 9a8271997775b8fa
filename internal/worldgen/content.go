package worldgen

import (
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/content"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// placeContent deterministically populates a space's NPCs, item drops, and
// features from the biome's theme family, and rolls for a treasure room by
// distance from the subzone entry (spec §4.3 "Content placement").
func placeContent(rng interface{ IntN(int) int }, fam content.ThemeFamily, node *repo.GraphNode, props *repo.SpaceProperties) {
	if id, ok := content.PickWeighted(fam.EncounterTable, rng.IntN(1000)); ok {
		props.Entities = append(props.Entities, fmt.Sprintf("npc:%s", id))
	}
	if id, ok := content.PickWeighted(fam.LootTable, rng.IntN(1000)); ok {
		props.Items = append(props.Items, fmt.Sprintf("drop:%s", id))
	}
	if id, ok := content.PickWeighted(fam.FeatureTable, rng.IntN(1000)); ok {
		props.ResourceNodes = append(props.ResourceNodes, repo.ResourceNode{
			ID: fmt.Sprintf("%s-resource", node.ID), TemplateID: id, Quantity: 1 + rng.IntN(3),
		})
	}

	if node.NodeType == repo.NodeBoss {
		props.Terrain = repo.TerrainDifficult
	}
}

// treasureRoomChance returns the placement probability for a treasure room
// at the given hop distance from the subzone entry (spec §4.3: "distance
// 2-3 from entry (probability 0 at distance 0, 50% at 1, 75% at 2, 0
// later)"). Note the spec's own distances and percentages read as a single
// bell rather than literally "2-3": distance 1 is where the first nonzero
// chance appears, distance 2 peaks, distance 3+ is zero.
func treasureRoomChance(distance int) int {
	switch distance {
	case 1:
		return 50
	case 2:
		return 75
	default:
		return 0
	}
}

// maybePlaceTreasureRoom rolls for a treasure room at a space, skipping if
// one is already placed in the subzone (spec §4.3).
func maybePlaceTreasureRoom(rng interface{ IntN(int) int }, distance int, alreadyPlaced bool) bool {
	if alreadyPlaced {
		return false
	}
	chance := treasureRoomChance(distance)
	if chance <= 0 {
		return false
	}
	return rng.IntN(100) < chance
}
