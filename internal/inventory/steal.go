package inventory

import (
	"context"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
	"github.com/kirkdiggler/dungeonmaster/internal/skill"
)

// StealOutcome reports whether a pickpocket/plant attempt went unnoticed.
type StealOutcome struct {
	Succeeded bool
}

// Pickpocket moves instanceID from target's inventory to actor's,
// gated by an opposed Stealth (actor) vs Perception (target) check
// (spec §4.9 "pickpocket(npc) ... opposed Stealth vs. Perception;
// success produces a quiet transfer"). On failure neither inventory
// changes.
func Pickpocket(
	ctx context.Context,
	roller dice.Roller,
	stealthLevel, perceptionLevel int,
	actor, target Component,
	templates TemplateLookup,
	instanceID string,
) (Component, Component, StealOutcome, error) {
	result, err := skill.Opposed(ctx, roller, stealthLevel, perceptionLevel)
	if err != nil {
		return actor, target, StealOutcome{}, err
	}
	if !result.AttackerWins {
		return actor, target, StealOutcome{Succeeded: false}, nil
	}

	inst, ok := target.Instances[instanceID]
	if !ok {
		return actor, target, StealOutcome{}, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: instance "+instanceID+" not found")
	}
	nextTarget, err := Remove(target, instanceID)
	if err != nil {
		return actor, target, StealOutcome{}, err
	}
	nextActor, err := Add(actor, templates, inst)
	if err != nil {
		return actor, target, StealOutcome{}, err
	}
	return nextActor, nextTarget, StealOutcome{Succeeded: true}, nil
}

// Plant is Pickpocket's inverse: actor slips instanceID into target's
// inventory unnoticed, gated by the same opposed check.
func Plant(
	ctx context.Context,
	roller dice.Roller,
	stealthLevel, perceptionLevel int,
	actor, target Component,
	templates TemplateLookup,
	instanceID string,
) (Component, Component, StealOutcome, error) {
	result, err := skill.Opposed(ctx, roller, stealthLevel, perceptionLevel)
	if err != nil {
		return actor, target, StealOutcome{}, err
	}
	if !result.AttackerWins {
		return actor, target, StealOutcome{Succeeded: false}, nil
	}

	inst, ok := actor.Instances[instanceID]
	if !ok {
		return actor, target, StealOutcome{}, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: instance "+instanceID+" not found")
	}
	nextActor, err := Remove(actor, instanceID)
	if err != nil {
		return actor, target, StealOutcome{}, err
	}
	nextTarget, err := Add(target, templates, inst)
	if err != nil {
		return actor, target, StealOutcome{}, err
	}
	return nextActor, nextTarget, StealOutcome{Succeeded: true}, nil
}
