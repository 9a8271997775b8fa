package combat

import (
	"context"
	"fmt"
	"sort"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

// TurnQueue orders combatants by initiative (d20 + strMod, descending) for
// a single-space engagement (spec §4.6: "The space's turn queue is ordered
// by initiative; the player always rolls once per prompt cycle").
type TurnQueue struct {
	order []string
	pos   int
}

type seed struct {
	entityID   string
	initiative int
}

// NewTurnQueue rolls initiative for every combatant and orders them
// descending. Ties keep ascending entity-id order (ids are sorted before
// rolling and the sort is stable).
func NewTurnQueue(ctx context.Context, roller dice.Roller, combatants map[string]int) (*TurnQueue, error) {
	seeds := make([]seed, 0, len(combatants))
	ids := make([]string, 0, len(combatants))
	for id := range combatants {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic iteration before rolling

	for _, id := range ids {
		roll, err := roller.Roll(20)
		if err != nil {
			return nil, fmt.Errorf("combat: roll initiative for %s: %w", id, err)
		}
		seeds = append(seeds, seed{entityID: id, initiative: roll + combatants[id]})
	}

	sort.SliceStable(seeds, func(i, j int) bool {
		return seeds[i].initiative > seeds[j].initiative
	})

	order := make([]string, len(seeds))
	for i, s := range seeds {
		order[i] = s.entityID
	}

	return &TurnQueue{order: order}, nil
}

// Current returns the entity id whose turn it currently is.
func (q *TurnQueue) Current() string {
	if len(q.order) == 0 {
		return ""
	}
	return q.order[q.pos%len(q.order)]
}

// Advance moves to the next combatant in initiative order, wrapping.
func (q *TurnQueue) Advance() {
	if len(q.order) == 0 {
		return
	}
	q.pos = (q.pos + 1) % len(q.order)
}

// Remove drops an entity from the queue (e.g. on death or flee), keeping
// the current pointer valid.
func (q *TurnQueue) Remove(entityID string) {
	for i, id := range q.order {
		if id != entityID {
			continue
		}
		q.order = append(q.order[:i], q.order[i+1:]...)
		if q.pos > i || q.pos >= len(q.order) {
			if q.pos > 0 {
				q.pos--
			}
		}
		return
	}
}
