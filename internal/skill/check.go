package skill

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

// CheckResult is the outcome of a single skill check (spec §4.7).
type CheckResult struct {
	Roll           int
	EffectiveLevel int
	Success        bool
	Critical       bool // natural 20: always succeeds
	Fumble         bool // natural 1: always fails
}

// Check resolves entityID,skillName against dc: roll d20, effective level =
// base level + temp buffs, success iff roll+effectiveLevel >= dc. Natural
// 20 is an automatic critical success; natural 1 is an automatic critical
// failure, regardless of the arithmetic.
func Check(ctx context.Context, roller dice.Roller, baseLevel, tempBuff, dc int) (CheckResult, error) {
	roll, err := roller.Roll(20)
	if err != nil {
		return CheckResult{}, fmt.Errorf("skill: roll check: %w", err)
	}

	effectiveLevel := baseLevel + tempBuff
	result := CheckResult{Roll: roll, EffectiveLevel: effectiveLevel}

	switch roll {
	case 20:
		result.Critical = true
		result.Success = true
	case 1:
		result.Fumble = true
		result.Success = false
	default:
		result.Success = roll+effectiveLevel >= dc
	}

	return result, nil
}

// OpposedResult is the outcome of comparing two d20+level totals.
type OpposedResult struct {
	AttackerTotal int
	DefenderTotal int
	AttackerWins  bool
}

// Opposed resolves an opposed check: both sides roll d20+level, higher
// total wins; ties go to the defender (spec §4.7).
func Opposed(ctx context.Context, roller dice.Roller, attackerLevel, defenderLevel int) (OpposedResult, error) {
	attackerRoll, err := roller.Roll(20)
	if err != nil {
		return OpposedResult{}, fmt.Errorf("skill: roll attacker opposed check: %w", err)
	}
	defenderRoll, err := roller.Roll(20)
	if err != nil {
		return OpposedResult{}, fmt.Errorf("skill: roll defender opposed check: %w", err)
	}

	attackerTotal := attackerRoll + attackerLevel
	defenderTotal := defenderRoll + defenderLevel

	return OpposedResult{
		AttackerTotal: attackerTotal,
		DefenderTotal: defenderTotal,
		AttackerWins:  attackerTotal > defenderTotal,
	}, nil
}
