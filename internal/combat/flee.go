package combat

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

const fleeChancePercent = 50

// FleeOutcome describes the result of a flee attempt.
type FleeOutcome struct {
	Escaped      bool
	FreeAttack   *AttackOutcome // non-nil iff the opponent got a free attack
}

// ResolveFlee implements spec §4.6's flee rule: 50% base chance to escape;
// on failure the opponent gets a free attack using the normal attack
// resolution.
func ResolveFlee(
	ctx context.Context,
	roller dice.Roller,
	opponentStrMod, opponentWeaponBonus, fleeingArmorDefense int,
	fleeingID string,
	defense DefenseChecker,
) (FleeOutcome, error) {
	roll, err := roller.Roll(100)
	if err != nil {
		return FleeOutcome{}, fmt.Errorf("combat: roll flee: %w", err)
	}

	if roll <= fleeChancePercent {
		return FleeOutcome{Escaped: true}, nil
	}

	outcome, err := ResolveAttack(ctx, roller, opponentStrMod, opponentWeaponBonus, fleeingArmorDefense, fleeingID, defense)
	if err != nil {
		return FleeOutcome{}, fmt.Errorf("combat: free attack on failed flee: %w", err)
	}

	return FleeOutcome{Escaped: false, FreeAttack: &outcome}, nil
}
