package skill

import (
	"context"
	"fmt"
	"math"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// PerkMilestoneInterval is how often (in levels) a perk choice is offered
// (spec §4.7: "Every 10 levels").
const PerkMilestoneInterval = 10

// XPToNext returns the XP threshold to cross from level to level+1 (spec
// §4.7: xpToNext(level) = 100 * (level+1)^2).
func XPToNext(level int) int {
	next := float64(level + 1)
	return int(100 * next * next)
}

// Config tunes XP grant and lucky promotion (spec §4.7, "configurable").
type Config struct {
	SuccessXPFraction float64 // fraction of base XP on success (default 1.0)
	FailureXPFraction float64 // fraction of base XP on failure (default 0.2)
	LuckyPromotionOn  bool    // off by default in tests
	BaseLuckyChance   int     // d100 threshold at level 0, scaled by sqrt(level+1)
}

// DefaultConfig matches spec §4.7's stated percentages with lucky
// promotion disabled.
var DefaultConfig = Config{
	SuccessXPFraction: 1.0,
	FailureXPFraction: 0.2,
	LuckyPromotionOn:  false,
	BaseLuckyChance:   10,
}

// GrantOutcome describes what happened when XP was granted.
type GrantOutcome struct {
	State            repo.SkillState
	LuckyPromotion   bool
	LevelsGained     int
	PerkMilestones   []int // levels at which a perk choice unlocked, in order
}

// Grant applies spec §4.7's XP grant: lucky promotion is rolled first (if
// enabled); on a miss, base XP (scaled by success/failure fraction) is
// added and every threshold crossed bumps the level, possibly more than
// once in a single grant.
func Grant(ctx context.Context, roller dice.Roller, cfg Config, state repo.SkillState, baseXP int, success bool) (GrantOutcome, error) {
	out := GrantOutcome{State: state}

	if cfg.LuckyPromotionOn {
		threshold := int(float64(cfg.BaseLuckyChance) / math.Sqrt(float64(state.Level+1)))
		roll, err := roller.Roll(100)
		if err != nil {
			return GrantOutcome{}, fmt.Errorf("skill: roll lucky promotion: %w", err)
		}
		if roll <= threshold {
			out.LuckyPromotion = true
			out.State.Level++
			out.LevelsGained = 1
			if out.State.Level%PerkMilestoneInterval == 0 {
				out.PerkMilestones = append(out.PerkMilestones, out.State.Level)
			}
			return out, nil
		}
	}

	fraction := cfg.FailureXPFraction
	if success {
		fraction = cfg.SuccessXPFraction
	}
	awarded := int(float64(baseXP) * fraction)
	out.State.XP += awarded

	for out.State.XP >= XPToNext(out.State.Level) {
		out.State.XP -= XPToNext(out.State.Level)
		out.State.Level++
		out.LevelsGained++
		if out.State.Level%PerkMilestoneInterval == 0 {
			out.PerkMilestones = append(out.PerkMilestones, out.State.Level)
		}
	}

	return out, nil
}
