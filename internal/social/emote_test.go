package social

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirkdiggler/dungeonmaster/internal/content"
)

func TestProcessEmoteKnownKeyword(t *testing.T) {
	table := content.NewEmoteTable()
	comp := NewComponent("", nil) // disposition 0 -> neutral band

	next, outcome := ProcessEmote(table, comp, "wave", 1)
	assert.True(t, outcome.Resolved)
	assert.Equal(t, 2, next.Disposition) // neutral band "wave" delta is +2
}

func TestProcessEmoteUnknownKeywordFailsSoftly(t *testing.T) {
	table := content.NewEmoteTable()
	comp := NewComponent("", nil)

	next, outcome := ProcessEmote(table, comp, "juggle", 1)
	assert.False(t, outcome.Resolved)
	assert.Equal(t, comp.Disposition, next.Disposition)
	assert.Empty(t, next.EventLog)
}
