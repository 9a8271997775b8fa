package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

func TestAttemptChallengeSuccessGrantsDispositionAndUnlock(t *testing.T) {
	roller := dice.NewMockRoller(18, 2) // attacker 18+2=20 vs defender 2+1=3
	comp := NewComponent("", nil)
	challenge := Challenge{ID: "c1", Kind: ChallengePersuade, DefenderLevel: 1, DispositionBonus: 5, Unlocks: "skip_combat"}

	next, outcome, err := AttemptChallenge(context.Background(), roller, 2, comp, challenge, 1)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, "skip_combat", outcome.Unlocks)
	assert.Equal(t, 15, outcome.DispositionDelta) // Persuaded base 10 + bonus 5
	assert.Equal(t, 15, next.Disposition)
}

func TestAttemptChallengeFailureStillAppliesTableDelta(t *testing.T) {
	roller := dice.NewMockRoller(1, 15) // attacker 1+1=2 vs defender 15+5=20
	comp := NewComponent("", nil)
	challenge := Challenge{ID: "c1", Kind: ChallengeIntimidate, DefenderLevel: 5}

	next, outcome, err := AttemptChallenge(context.Background(), roller, 1, comp, challenge, 1)
	require.NoError(t, err)
	assert.False(t, outcome.Succeeded)
	assert.Empty(t, outcome.Unlocks)
	assert.Equal(t, -10, outcome.DispositionDelta) // Intimidated base -10, no bonus on failure
	assert.Equal(t, -10, next.Disposition)
}

func TestAttemptChallengeOncePerNPC(t *testing.T) {
	roller := dice.NewMockRoller(20, 1)
	comp := NewComponent("", nil)
	challenge := Challenge{ID: "c1", Kind: ChallengePersuade, DefenderLevel: 1}

	comp, _, err := AttemptChallenge(context.Background(), roller, 5, comp, challenge, 1)
	require.NoError(t, err)

	_, outcome, err := AttemptChallenge(context.Background(), roller, 5, comp, challenge, 2)
	require.NoError(t, err)
	assert.True(t, outcome.AlreadyAttempted)
}
