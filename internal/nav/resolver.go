package nav

import (
	"context"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// ConditionFailed is returned when an exit matched but one of its
// conditions was not met (spec §4.4: "ConditionNotMet(reason)").
type ConditionFailed struct {
	Exit   repo.Exit
	Reason string
}

func (ConditionFailed) isResolution() {}

// Moved is returned after a successfully gated exit has also been costed
// against the destination terrain (spec §4.4 "Terrain costing").
type Moved struct {
	Exit    repo.Exit
	Outcome MoveOutcome
}

func (Moved) isResolution() {}

// TerrainLookup resolves the terrain of a destination space. internal/world
// supplies this from internal/worldgen's materialized SpaceProperties.
type TerrainLookup interface {
	TerrainFor(ctx context.Context, chunkID string) (repo.Terrain, error)
}

// Resolver ties together exit visibility, three-phase matching, condition
// gating, and terrain costing into the single entry point the intent
// pipeline's Move handler calls (spec §4.4).
type Resolver struct {
	Roller    dice.Roller
	LLM       LLMDirectionMatcher
	Skills    SkillChecker
	Inventory InventoryChecker
	Terrain   TerrainLookup
}

// NewResolver builds a Resolver. Roller is required; the rest may be nil to
// degrade the corresponding phase (no LLM fallback, conditions fail closed,
// terrain costing falls back to NORMAL).
func NewResolver(roller dice.Roller, llm LLMDirectionMatcher, skills SkillChecker, inventory InventoryChecker, terrain TerrainLookup) *Resolver {
	return &Resolver{Roller: roller, LLM: llm, Skills: skills, Inventory: inventory, Terrain: terrain}
}

// Resolve runs the full phrase-to-move pipeline: visibility, matching,
// condition gating, then terrain costing. entityID and perceptionModifier
// describe the mover; athleticsBonus discounts terrain tick cost.
func (r *Resolver) Resolve(
	ctx context.Context,
	phrase string,
	props *repo.SpaceProperties,
	entityID string,
	perceptionModifier, athleticsBonus int,
) (Resolution, error) {
	visible, err := VisibleExits(props, r.Roller, perceptionModifier)
	if err != nil {
		return nil, err
	}

	match := MatchDirection(ctx, phrase, visible, r.LLM)
	resolved, ok := match.(Resolved)
	if !ok {
		return match, nil
	}

	gate, err := EvaluateConditions(ctx, resolved.Exit.Conditions, entityID, props.Flags, r.Skills, r.Inventory)
	if err != nil {
		return nil, err
	}
	if !gate.Passed {
		return ConditionFailed{Exit: resolved.Exit, Reason: gate.Reason}, nil
	}

	terrain := repo.TerrainNormal
	if r.Terrain != nil {
		terrain, err = r.Terrain.TerrainFor(ctx, resolved.Exit.TargetID)
		if err != nil {
			return nil, err
		}
	}
	outcome := CostMove(terrain, athleticsBonus)
	return Moved{Exit: resolved.Exit, Outcome: outcome}, nil
}
