package inventory

import (
	"encoding/json"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
)

// DecodeSnapshot reverses combat.EncodeSnapshot, rebuilding a typed value
// from a repo.Corpse snapshot map.
func DecodeSnapshot[T any](snapshot map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return out, fmt.Errorf("inventory: encode snapshot for decode: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("inventory: decode snapshot: %w", err)
	}
	return out, nil
}

// LootResult reports what transferred off a corpse and what couldn't fit.
type LootResult struct {
	Looted  []string // instance ids successfully added
	Skipped []string // instance ids rejected (overweight, unknown template)
	Gold    int
}

// LootCorpse transfers every instance in a decoded corpse inventory
// snapshot into c via the same Add rules as a live pickup (spec §4.9:
// "Corpse looting operates on a frozen snapshot with the same interface
// semantics"), so an already-full inventory can only partially loot.
func LootCorpse(c Component, templates TemplateLookup, snapshot map[string]items.Instance, goldSnapshot int) (Component, LootResult) {
	next := c
	result := LootResult{Gold: goldSnapshot}
	for id, inst := range snapshot {
		updated, err := Add(next, templates, inst)
		if err != nil {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		next = updated
		result.Looted = append(result.Looted, id)
	}
	next.Gold += goldSnapshot
	return next, result
}
