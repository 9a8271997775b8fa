package combat

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/events"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

// EntityStore is the narrow slice of store.Store the resolver needs — a
// forward-compatible seam so tests can substitute a minimal fake without
// spinning up the full entity store.
type EntityStore interface {
	Get(entityID string) (store.Entity, bool)
	Replace(e store.Entity)
}

// Resolver ties attack/defense/flee/death resolution to the entity store,
// reusing the narrower ResolveAttack/ResolveFlee/HandlePlayerDeath/
// HandleNPCDeath functions for the rules themselves (spec §4.6, C6).
type Resolver struct {
	Store      EntityStore
	Roller     dice.Roller
	Equipment  EquipmentLookup
	Defense    DefenseChecker
	Bus        events.EventBus
	Corpses    *repo.CorpseRepository
	DeathCfg   DeathConfig
	NewID      func() string
	NowTick    func() int64
}

func (r *Resolver) equipment() EquipmentLookup {
	if r.Equipment == nil {
		return NoEquipment{}
	}
	return r.Equipment
}

func (r *Resolver) defense() DefenseChecker {
	if r.Defense == nil {
		return NoDefense{}
	}
	return r.Defense
}

func (r *Resolver) publish(e events.Event) {
	if r.Bus == nil {
		return
	}
	_ = r.Bus.Publish(e)
}

func combatOf(e store.Entity) (Component, bool) {
	c, ok := e.ComponentOf(core.ComponentCombat).(Component)
	return c, ok
}

// Engage transitions both combatants into InCombat, refusing the action if
// the space is a safe zone (spec §4.6: "If isSafeZone, attack intent fails
// with NoCombatInSafeZone").
func (r *Resolver) Engage(ctx context.Context, attackerID, defenderID string, isSafeZone bool) error {
	if isSafeZone {
		return rpgerr.Blocked("safe_zone")
	}

	attacker, ok := r.Store.Get(attackerID)
	if !ok {
		return fmt.Errorf("combat: attacker %s not found", attackerID)
	}
	defender, ok := r.Store.Get(defenderID)
	if !ok {
		return fmt.Errorf("combat: defender %s not found", defenderID)
	}

	ac, ok := combatOf(attacker)
	if !ok {
		return fmt.Errorf("combat: attacker %s has no Combat component", attackerID)
	}
	dc, ok := combatOf(defender)
	if !ok {
		return fmt.Errorf("combat: defender %s has no Combat component", defenderID)
	}

	r.Store.Replace(attacker.WithComponent(ac.WithState(StateInCombat, defenderID)))
	r.Store.Replace(defender.WithComponent(dc.WithState(StateInCombat, attackerID)))
	return nil
}

// Attack resolves one attack from attackerID against defenderID, applying
// damage and death consequences, and returns the outcome.
func (r *Resolver) Attack(ctx context.Context, attackerID, defenderID string) (AttackOutcome, error) {
	attacker, ok := r.Store.Get(attackerID)
	if !ok {
		return AttackOutcome{}, fmt.Errorf("combat: attacker %s not found", attackerID)
	}
	defender, ok := r.Store.Get(defenderID)
	if !ok {
		return AttackOutcome{}, fmt.Errorf("combat: defender %s not found", defenderID)
	}

	ac, ok := combatOf(attacker)
	if !ok {
		return AttackOutcome{}, fmt.Errorf("combat: attacker %s has no Combat component", attackerID)
	}
	dc, ok := combatOf(defender)
	if !ok {
		return AttackOutcome{}, fmt.Errorf("combat: defender %s has no Combat component", defenderID)
	}

	weaponBonus, err := r.equipment().EffectiveWeaponBonus(ctx, attackerID, ac.LegacyWeaponBonus)
	if err != nil {
		return AttackOutcome{}, fmt.Errorf("combat: weapon bonus: %w", err)
	}
	armorDefense, err := r.equipment().EffectiveArmorDefense(ctx, defenderID, dc.LegacyArmorDefense)
	if err != nil {
		return AttackOutcome{}, fmt.Errorf("combat: armor defense: %w", err)
	}

	outcome, err := ResolveAttack(ctx, r.Roller, ac.StrMod, weaponBonus, armorDefense, defenderID, r.defense())
	if err != nil {
		return AttackOutcome{}, err
	}

	if outcome.Damage > 0 {
		dc = dc.WithDamage(outcome.Damage)
		r.Store.Replace(defender.WithComponent(dc))
	}

	r.publish(events.NewCombat(fmt.Sprintf("%s attacks %s for %d damage", attackerID, defenderID, outcome.Damage)))

	if !dc.Alive() {
		if err := r.handleDeath(ctx, defender, dc, attacker, ac); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

func (r *Resolver) handleDeath(ctx context.Context, defender store.Entity, dc Component, victor store.Entity, vc Component) error {
	dc = dc.WithState(StateDefeated, "")
	vc = vc.WithState(StateVictor, "")
	r.Store.Replace(defender.WithComponent(dc))
	r.Store.Replace(victor.WithComponent(vc))

	if defender.Kind == core.KindNPC {
		corpse, err := HandleNPCDeath(ctx, r.Corpses, r.DeathCfg, r.NewID(), defender.ID, defender.SpaceID, nil, r.NowTick())
		if err != nil {
			return err
		}
		r.publish(events.NewQuest("", fmt.Sprintf("KilledNPC:%s", defender.ID)))
		_ = corpse
		return nil
	}

	_, err := HandlePlayerDeath(ctx, r.Corpses, r.DeathCfg, r.NewID(), defender.ID, defender.SpaceID,
		dc.MaxHP, 0, nil, nil, r.NowTick())
	return err
}

// Flee resolves a flee attempt for fleeingID out of combat with opponentID.
func (r *Resolver) Flee(ctx context.Context, fleeingID, opponentID string) (FleeOutcome, error) {
	fleeing, ok := r.Store.Get(fleeingID)
	if !ok {
		return FleeOutcome{}, fmt.Errorf("combat: combatant %s not found", fleeingID)
	}
	opponent, ok := r.Store.Get(opponentID)
	if !ok {
		return FleeOutcome{}, fmt.Errorf("combat: opponent %s not found", opponentID)
	}

	fc, ok := combatOf(fleeing)
	if !ok {
		return FleeOutcome{}, fmt.Errorf("combat: combatant %s has no Combat component", fleeingID)
	}
	oc, ok := combatOf(opponent)
	if !ok {
		return FleeOutcome{}, fmt.Errorf("combat: opponent %s has no Combat component", opponentID)
	}

	weaponBonus, err := r.equipment().EffectiveWeaponBonus(ctx, opponentID, oc.LegacyWeaponBonus)
	if err != nil {
		return FleeOutcome{}, fmt.Errorf("combat: weapon bonus: %w", err)
	}
	armorDefense, err := r.equipment().EffectiveArmorDefense(ctx, fleeingID, fc.LegacyArmorDefense)
	if err != nil {
		return FleeOutcome{}, fmt.Errorf("combat: armor defense: %w", err)
	}

	outcome, err := ResolveFlee(ctx, r.Roller, oc.StrMod, weaponBonus, armorDefense, fleeingID, r.defense())
	if err != nil {
		return FleeOutcome{}, err
	}

	if outcome.Escaped {
		fc = fc.WithState(StateFled, "")
		oc = oc.WithState(StateIdle, "")
		r.Store.Replace(fleeing.WithComponent(fc))
		r.Store.Replace(opponent.WithComponent(oc))
		return outcome, nil
	}

	if outcome.FreeAttack.Damage > 0 {
		fc = fc.WithDamage(outcome.FreeAttack.Damage)
		r.Store.Replace(fleeing.WithComponent(fc))
	}
	if !fc.Alive() {
		if err := r.handleDeath(ctx, fleeing, fc, opponent, oc); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}
