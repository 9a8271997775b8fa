package skill

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/events"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

// defenseXPBase is the XP granted for a successful dodge/parry (spec §4.7:
// "the defender gains XP for the defensive skill via the same
// lucky-promotion path" — the spec leaves the base XP value to the
// implementation; chosen to match a routine skill-check reward).
const defenseXPBase = 10

// EntityStore is the narrow store seam the engine needs, matching the
// shape combat.EntityStore already established.
type EntityStore interface {
	Get(entityID string) (store.Entity, bool)
	Replace(e store.Entity)
}

// Engine resolves skill checks, XP grants, and unlock methods against the
// in-memory store, persisting the event log immediately via repo.
type Engine struct {
	Store   EntityStore
	Roller  dice.Roller
	Repo    *repo.SkillRepository
	Cfg     Config
	Bus     events.EventBus
	NewID   func() string
	NowTick func() int64
}

func componentOf(e store.Entity) Component {
	c, _ := e.ComponentOf(core.ComponentSkill).(Component)
	return c
}

func tempBuffFor(state repo.SkillState) int {
	for _, t := range state.Tags {
		if len(t) >= 8 && t[:8] == "trained:" {
			return TrainingTempBuff
		}
	}
	for _, t := range state.Tags {
		if len(t) >= 9 && t[:9] == "observed:" {
			return ObservationTempBuff
		}
	}
	return 0
}

func (e *Engine) publish(ev events.Event) {
	if e.Bus == nil {
		return
	}
	_ = e.Bus.Publish(ev)
}

// CheckSkill satisfies nav.SkillChecker: roll a check for entityID's named
// skill against dc.
func (e *Engine) CheckSkill(ctx context.Context, entityID, skillName string, dc int) (bool, error) {
	entity, ok := e.Store.Get(entityID)
	if !ok {
		return false, fmt.Errorf("skill: entity %s not found", entityID)
	}
	state := componentOf(entity).Get(skillName)
	result, err := Check(ctx, e.Roller, state.Level, tempBuffFor(state), dc)
	if err != nil {
		return false, err
	}
	return result.Success, nil
}

// AttemptDefense satisfies combat.DefenseChecker: the defender's best
// unlocked defensive skill (Dodge or Parry) opposed-rolls against the
// attacker's already-resolved d20 attack roll. Ties favor the defender.
func (e *Engine) AttemptDefense(ctx context.Context, defenderID string, attackRoll int) (bool, error) {
	entity, ok := e.Store.Get(defenderID)
	if !ok {
		return false, fmt.Errorf("skill: entity %s not found", defenderID)
	}
	comp := componentOf(entity)

	dodge := comp.Get("Dodge")
	parry := comp.Get("Parry")
	chosen := dodge
	if parry.Unlocked && (!dodge.Unlocked || parry.Level > dodge.Level) {
		chosen = parry
	}
	if !chosen.Unlocked {
		return false, nil
	}

	roll, err := e.Roller.Roll(20)
	if err != nil {
		return false, fmt.Errorf("skill: roll defense: %w", err)
	}
	defenderTotal := roll + chosen.Level + tempBuffFor(chosen)
	negated := defenderTotal >= attackRoll
	if !negated {
		return false, nil
	}

	outcome, err := Grant(ctx, e.Roller, e.Cfg, chosen, defenseXPBase, true)
	if err != nil {
		return true, err
	}
	comp = comp.With(outcome.State)
	e.Store.Replace(entity.WithComponent(comp))
	e.logLevelUp(ctx, defenderID, outcome)

	return true, nil
}

// GrantXP applies an XP grant to entityID's skill and persists the result,
// emitting a LevelUp event and raising a perk-milestone flag every 10
// levels (spec §4.7).
func (e *Engine) GrantXP(ctx context.Context, entityID, skillName string, baseXP int, success bool) (GrantOutcome, error) {
	entity, ok := e.Store.Get(entityID)
	if !ok {
		return GrantOutcome{}, fmt.Errorf("skill: entity %s not found", entityID)
	}
	comp := componentOf(entity)
	state := comp.Get(skillName)

	outcome, err := Grant(ctx, e.Roller, e.Cfg, state, baseXP, success)
	if err != nil {
		return GrantOutcome{}, err
	}

	comp = comp.With(outcome.State)
	e.Store.Replace(entity.WithComponent(comp))
	e.logLevelUp(ctx, entityID, outcome)

	return outcome, nil
}

func (e *Engine) logLevelUp(ctx context.Context, entityID string, outcome GrantOutcome) {
	if outcome.LevelsGained == 0 {
		return
	}
	if e.Repo != nil && e.NewID != nil && e.NowTick != nil {
		_ = e.Repo.Append(ctx, repo.SkillEvent{
			ID:         e.NewID(),
			EntityID:   entityID,
			SkillName:  outcome.State.SkillName,
			Kind:       repo.SkillEventLevelUp,
			Detail:     fmt.Sprintf("level %d", outcome.State.Level),
			OccurredAt: e.NowTick(),
		})
		for _, lvl := range outcome.PerkMilestones {
			_ = e.Repo.Append(ctx, repo.SkillEvent{
				ID:         e.NewID(),
				EntityID:   entityID,
				SkillName:  outcome.State.SkillName,
				Kind:       repo.SkillEventPerkUnlock,
				Detail:     fmt.Sprintf("perk milestone at level %d", lvl),
				OccurredAt: e.NowTick(),
			})
		}
	}
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s leveled up %s to %d", entityID, outcome.State.SkillName, outcome.State.Level)))
}
