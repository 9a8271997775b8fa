package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
)

type fakeComponent struct{ kind core.ComponentKind }

func (f fakeComponent) Kind() core.ComponentKind { return f.kind }

func TestComponentKindDistinctValues(t *testing.T) {
	kinds := []core.ComponentKind{
		core.ComponentSocial, core.ComponentCombat, core.ComponentInventory,
		core.ComponentTrading, core.ComponentGraphNode, core.ComponentSpaceProperties,
		core.ComponentSkill, core.ComponentKnowledge,
	}
	seen := map[core.ComponentKind]bool{}
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate component kind %s", k)
		seen[k] = true
	}
}

func TestComponentInterface(t *testing.T) {
	var c core.Component = fakeComponent{kind: core.ComponentSocial}
	assert.Equal(t, core.ComponentSocial, c.Kind())
}

func TestEntityKindDistinctValues(t *testing.T) {
	kinds := []core.EntityKind{core.KindPlayer, core.KindNPC, core.KindItem, core.KindFeature}
	seen := map[core.EntityKind]bool{}
	for _, k := range kinds {
		assert.False(t, seen[k])
		seen[k] = true
	}
}
