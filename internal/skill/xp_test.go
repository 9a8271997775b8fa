package skill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

func TestXPToNextMatchesFormula(t *testing.T) {
	assert.Equal(t, 100, XPToNext(0))  // 100*(0+1)^2
	assert.Equal(t, 400, XPToNext(1))  // 100*(1+1)^2
	assert.Equal(t, 900, XPToNext(2))
}

func TestGrantSuccessFullXP(t *testing.T) {
	roller := dice.NewMockRoller(1) // unused since lucky promotion is off
	cfg := DefaultConfig
	state := repo.SkillState{SkillName: "Athletics", Level: 0, XP: 0}

	outcome, err := Grant(context.Background(), roller, cfg, state, 50, true)
	require.NoError(t, err)
	assert.Equal(t, 50, outcome.State.XP)
	assert.Equal(t, 0, outcome.LevelsGained)
}

func TestGrantFailurePartialXP(t *testing.T) {
	roller := dice.NewMockRoller(1)
	cfg := DefaultConfig
	state := repo.SkillState{SkillName: "Athletics", Level: 0, XP: 0}

	outcome, err := Grant(context.Background(), roller, cfg, state, 50, false)
	require.NoError(t, err)
	assert.Equal(t, 10, outcome.State.XP) // 20% of 50
}

func TestGrantCrossesMultipleLevelThresholds(t *testing.T) {
	roller := dice.NewMockRoller(1)
	cfg := DefaultConfig
	state := repo.SkillState{SkillName: "Athletics", Level: 0, XP: 0}

	// 100 to hit level 1, 400 to hit level 2: grant 600 total in one shot
	outcome, err := Grant(context.Background(), roller, cfg, state, 600, true)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.LevelsGained)
	assert.Equal(t, 2, outcome.State.Level)
	assert.Equal(t, 100, outcome.State.XP) // 600-100-400=100 remaining, short of 900 for lvl3
}

func TestGrantRaisesPerkMilestoneEveryTenLevels(t *testing.T) {
	roller := dice.NewMockRoller(1)
	cfg := DefaultConfig
	state := repo.SkillState{SkillName: "Athletics", Level: 9, XP: XPToNext(9) - 1}

	outcome, err := Grant(context.Background(), roller, cfg, state, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 10, outcome.State.Level)
	assert.Equal(t, []int{10}, outcome.PerkMilestones)
}

func TestGrantLuckyPromotionSkipsXPPath(t *testing.T) {
	roller := dice.NewMockRoller(1) // roll 1 <= threshold at level 0
	cfg := Config{SuccessXPFraction: 1.0, FailureXPFraction: 0.2, LuckyPromotionOn: true, BaseLuckyChance: 10}
	state := repo.SkillState{SkillName: "Athletics", Level: 0, XP: 0}

	outcome, err := Grant(context.Background(), roller, cfg, state, 50, true)
	require.NoError(t, err)
	assert.True(t, outcome.LuckyPromotion)
	assert.Equal(t, 1, outcome.State.Level)
	assert.Equal(t, 0, outcome.State.XP)
}

func TestGrantLuckyPromotionMissFallsThroughToXP(t *testing.T) {
	roller := dice.NewMockRoller(99) // above threshold, promotion misses
	cfg := Config{SuccessXPFraction: 1.0, FailureXPFraction: 0.2, LuckyPromotionOn: true, BaseLuckyChance: 10}
	state := repo.SkillState{SkillName: "Athletics", Level: 0, XP: 0}

	outcome, err := Grant(context.Background(), roller, cfg, state, 50, true)
	require.NoError(t, err)
	assert.False(t, outcome.LuckyPromotion)
	assert.Equal(t, 50, outcome.State.XP)
}
