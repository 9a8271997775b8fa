package skill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

func newTestEngine(t *testing.T, roller dice.Roller) (*Engine, *store.Store) {
	t.Helper()
	db, err := repo.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	idCounter := 0
	tick := int64(0)

	s := store.New(nil)
	e := &Engine{
		Store:  s,
		Roller: roller,
		Repo:   repo.NewSkillRepository(db),
		Cfg:    DefaultConfig,
		NewID: func() string {
			idCounter++
			return "evt-" + string(rune('0'+idCounter))
		},
		NowTick: func() int64 { return tick },
	}
	return e, s
}

func withSkillEntity(s *store.Store, id string, skills map[string]repo.SkillState) {
	ent := store.NewEntity(id, core.KindPlayer, id, "", "space-1")
	s.Replace(ent.WithComponent(NewComponent(skills)))
}

func TestCheckSkillUsesEntitysLevelAndTempBuff(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(10))
	withSkillEntity(s, "player-1", map[string]repo.SkillState{
		"Athletics": {SkillName: "Athletics", Unlocked: true, Level: 3, Tags: []string{"trained:npc-1"}},
	})

	ok, err := e.CheckSkill(context.Background(), "player-1", "Athletics", 20) // 10+3+10=23>=20
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckSkillUnknownSkillDefaultsToZero(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(5))
	withSkillEntity(s, "player-1", nil)

	ok, err := e.CheckSkill(context.Background(), "player-1", "Athletics", 20) // 5+0=5<20
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttemptDefensePrefersHigherLevelOfDodgeOrParry(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(10, 1)) // defense roll 10; second value unused since Grant() with LuckyPromotionOn=false never rolls
	withSkillEntity(s, "defender-1", map[string]repo.SkillState{
		"Dodge": {SkillName: "Dodge", Unlocked: true, Level: 2},
		"Parry": {SkillName: "Parry", Unlocked: true, Level: 5},
	})

	negated, err := e.AttemptDefense(context.Background(), "defender-1", 14) // attacker rolled 14; defender 10+5=15 >= 14
	require.NoError(t, err)
	assert.True(t, negated)

	ent, _ := s.Get("defender-1")
	comp := componentOf(ent)
	assert.Equal(t, 10, comp.Get("Parry").XP) // defenseXPBase=10, success fraction 1.0
}

func TestAttemptDefenseFailsWithNoUnlockedSkill(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(20))
	withSkillEntity(s, "defender-1", nil)

	negated, err := e.AttemptDefense(context.Background(), "defender-1", 5)
	require.NoError(t, err)
	assert.False(t, negated)
}

func TestAttemptDefenseBelowAttackRollDoesNotNegate(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(2))
	withSkillEntity(s, "defender-1", map[string]repo.SkillState{
		"Dodge": {SkillName: "Dodge", Unlocked: true, Level: 1},
	})

	negated, err := e.AttemptDefense(context.Background(), "defender-1", 19) // 2+1=3 < 19
	require.NoError(t, err)
	assert.False(t, negated)
}

func TestGrantXPPersistsStateOnEntity(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(1))
	withSkillEntity(s, "player-1", map[string]repo.SkillState{
		"Athletics": {SkillName: "Athletics", Level: 0, XP: 0},
	})

	outcome, err := e.GrantXP(context.Background(), "player-1", "Athletics", 50, true)
	require.NoError(t, err)
	assert.Equal(t, 50, outcome.State.XP)

	ent, _ := s.Get("player-1")
	comp := componentOf(ent)
	assert.Equal(t, 50, comp.Get("Athletics").XP)
}

func TestGrantXPLogsLevelUpEvent(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(1))
	withSkillEntity(s, "player-1", map[string]repo.SkillState{
		"Athletics": {SkillName: "Athletics", Level: 0, XP: 0},
	})

	_, err := e.GrantXP(context.Background(), "player-1", "Athletics", 600, true) // crosses level 1 and 2
	require.NoError(t, err)

	events, err := e.Repo.Events(context.Background(), "player-1", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, repo.SkillEventLevelUp, events[0].Kind)
}

func TestGrantXPNoEventWhenNoLevelGained(t *testing.T) {
	e, s := newTestEngine(t, dice.NewMockRoller(1))
	withSkillEntity(s, "player-1", map[string]repo.SkillState{
		"Athletics": {SkillName: "Athletics", Level: 0, XP: 0},
	})

	_, err := e.GrantXP(context.Background(), "player-1", "Athletics", 10, true)
	require.NoError(t, err)

	events, err := e.Repo.Events(context.Background(), "player-1", 10)
	require.NoError(t, err)
	assert.Len(t, events, 0)
}
