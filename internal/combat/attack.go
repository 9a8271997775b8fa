package combat

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

const (
	damageRollMin = 5
	damageRollMax = 16
)

// AttackOutcome describes a single resolved attack.
type AttackOutcome struct {
	AttackRoll int
	Critical   bool
	Miss       bool
	Defended   bool
	Damage     int
}

// ResolveAttack implements spec §4.6's attack resolution: damage =
// uniform(5,16) + weaponBonus + strMod - defenderArmorDefense, clamped to
// >= 1. Natural 20 doubles damage pre-armor; natural 1 always misses. The
// defender gets one opposed defense roll when the attack would otherwise
// land.
func ResolveAttack(
	ctx context.Context,
	roller dice.Roller,
	attackerStrMod, weaponBonus, armorDefense int,
	defenderID string,
	defense DefenseChecker,
) (AttackOutcome, error) {
	attackRoll, err := roller.Roll(20)
	if err != nil {
		return AttackOutcome{}, fmt.Errorf("combat: roll attack: %w", err)
	}

	if attackRoll == 1 {
		return AttackOutcome{AttackRoll: attackRoll, Miss: true}, nil
	}

	negated, err := defense.AttemptDefense(ctx, defenderID, attackRoll)
	if err != nil {
		return AttackOutcome{}, fmt.Errorf("combat: attempt defense: %w", err)
	}
	if negated {
		return AttackOutcome{AttackRoll: attackRoll, Defended: true}, nil
	}

	raw, err := roller.Roll(damageRollMax - damageRollMin + 1)
	if err != nil {
		return AttackOutcome{}, fmt.Errorf("combat: roll damage: %w", err)
	}
	raw += damageRollMin - 1 // shift [1, 12] to [5, 16]

	base := raw + weaponBonus + attackerStrMod
	critical := attackRoll == 20
	if critical {
		base *= 2
	}

	damage := base - armorDefense
	if damage < 1 {
		damage = 1
	}

	return AttackOutcome{
		AttackRoll: attackRoll,
		Critical:   critical,
		Damage:     damage,
	}, nil
}
