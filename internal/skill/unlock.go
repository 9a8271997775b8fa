package skill

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// AttemptUnlockChance is the d100 threshold for the low-probability
// Attempt unlock method (spec §4.7).
const AttemptUnlockChance = 10

// ObservationTempBuff and TrainingTempBuff are the temp buffs granted by
// their respective unlock methods (spec §4.7).
const (
	ObservationTempBuff = 5
	TrainingTempBuff    = 10
)

// Attempt rolls a low-probability chance to unlock a skill the entity has
// never used before.
func Attempt(ctx context.Context, roller dice.Roller, state repo.SkillState) (repo.SkillState, bool, error) {
	roll, err := roller.Roll(100)
	if err != nil {
		return state, false, fmt.Errorf("skill: roll attempt unlock: %w", err)
	}
	if roll > AttemptUnlockChance {
		return state, false, nil
	}
	state.Unlocked = true
	return state, true, nil
}

// Observation unlocks the skill and grants a temporary buff, attributed to
// a mentor (spec §4.7: "Observation(mentorId) unlocks + 5 temp buff").
func Observation(state repo.SkillState, mentorID string) repo.SkillState {
	state.Unlocked = true
	state.Tags = appendUnique(state.Tags, "observed:"+mentorID)
	return state
}

// Training unlocks the skill at level 1 and grants a larger temp buff,
// attributed to a trainer (spec §4.7: "Training(trainerId) unlocks at
// level 1 + 10 temp buff").
func Training(state repo.SkillState, trainerID string) repo.SkillState {
	state.Unlocked = true
	if state.Level < 1 {
		state.Level = 1
	}
	state.Tags = appendUnique(state.Tags, "trained:"+trainerID)
	return state
}

// Prerequisite reports whether otherSkill meets the level threshold
// required to unlock the skill that declares this prerequisite.
func Prerequisite(otherSkill repo.SkillState, requiredLevel int) bool {
	return otherSkill.Unlocked && otherSkill.Level >= requiredLevel
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
