package social

import (
	"context"

	"github.com/kirkdiggler/dungeonmaster/internal/content"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/skill"
)

// ChallengeKind distinguishes the two social-check flavors (spec §4.8).
type ChallengeKind string

const (
	ChallengePersuade   ChallengeKind = "Persuade"
	ChallengeIntimidate ChallengeKind = "Intimidate"
)

// Challenge is a gated alternative-interaction-path check declared on an
// NPC (spec §4.8 "gated by a challenge declared on the NPC").
type Challenge struct {
	ID                string
	Kind              ChallengeKind
	DefenderLevel     int
	DispositionBonus  int // extra disposition delta on success, beyond the table default
	Unlocks           string // e.g. "skip_combat", "reveal_exit" — caller interprets
}

// ChallengeOutcome is the result of resolving a Challenge once.
type ChallengeOutcome struct {
	AlreadyAttempted bool
	Succeeded        bool
	Unlocks          string
	DispositionDelta int
}

// AttemptChallenge resolves an opposed CHA check (spec §4.8) between an
// attacker's skill level and the challenge's declared defender level,
// enforcing one attempt per challenge per NPC. A repeat attempt is a
// no-op that reports AlreadyAttempted rather than re-rolling.
func AttemptChallenge(
	ctx context.Context,
	roller dice.Roller,
	attackerLevel int,
	comp Component,
	challenge Challenge,
	nowTick int64,
) (Component, ChallengeOutcome, error) {
	if comp.HasAttempted(challenge.ID) {
		return comp, ChallengeOutcome{AlreadyAttempted: true}, nil
	}
	next := comp.WithAttempt(challenge.ID)

	result, err := skill.Opposed(ctx, roller, attackerLevel, challenge.DefenderLevel)
	if err != nil {
		return next, ChallengeOutcome{}, err
	}

	eventKind := string(ChallengePersuade)
	if challenge.Kind == ChallengeIntimidate {
		eventKind = string(ChallengeIntimidate)
	}
	eventKind += "d" // "Persuaded" / "Intimidated" — matches content.EventDelta keys

	delta := content.EventDelta[eventKind]
	if result.AttackerWins {
		delta += challenge.DispositionBonus
	}
	next = next.WithEvent(eventKind, delta, nowTick)

	outcome := ChallengeOutcome{Succeeded: result.AttackerWins, DispositionDelta: delta}
	if result.AttackerWins {
		outcome.Unlocks = challenge.Unlocks
	}
	return next, outcome, nil
}
