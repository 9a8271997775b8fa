package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
)

func TestNewComponentStartsEmpty(t *testing.T) {
	c := NewComponent(50)
	assert.Empty(t, c.Instances)
	assert.Empty(t, c.Equipped)
	assert.Equal(t, 0, c.Gold)
	assert.Equal(t, 50.0, c.CapacityWeight)
}

func TestEquippedInstanceMissingSlot(t *testing.T) {
	c := NewComponent(50)
	_, ok := c.EquippedInstance(items.SlotHead)
	assert.False(t, ok)
}

func TestEquippedInstanceResolvesOwnedInstance(t *testing.T) {
	c := NewComponent(50)
	c.Instances["inst-1"] = items.Instance{ID: "inst-1", TemplateID: "tmpl-helmet", Quality: 8}
	c.Equipped[items.SlotHead] = "inst-1"

	inst, ok := c.EquippedInstance(items.SlotHead)
	assert.True(t, ok)
	assert.Equal(t, "tmpl-helmet", inst.TemplateID)
}

func TestHasItem(t *testing.T) {
	c := NewComponent(50)
	c.Instances["inst-1"] = items.Instance{ID: "inst-1", TemplateID: "tmpl-rope"}

	assert.True(t, c.HasItem("tmpl-rope"))
	assert.False(t, c.HasItem("tmpl-sword"))
}

func TestMapTemplateLookup(t *testing.T) {
	m := MapTemplateLookup{"tmpl-rope": {ID: "tmpl-rope", Name: "Rope"}}

	tmpl, ok := m.Lookup("tmpl-rope")
	assert.True(t, ok)
	assert.Equal(t, "Rope", tmpl.Name)

	_, ok = m.Lookup("tmpl-unknown")
	assert.False(t, ok)
}

func TestCloneInstancesIsIndependent(t *testing.T) {
	c := NewComponent(50)
	c.Instances["inst-1"] = items.Instance{ID: "inst-1", TemplateID: "tmpl-rope"}

	clone := c.cloneInstances()
	clone["inst-2"] = items.Instance{ID: "inst-2", TemplateID: "tmpl-torch"}

	assert.Len(t, c.Instances, 1)
	assert.Len(t, clone, 2)
}
