package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

func equipTemplates() MapTemplateLookup {
	mainSlot := items.SlotHandsMain
	chestSlot := items.SlotChest
	return MapTemplateLookup{
		"tmpl-sword": {
			ID: "tmpl-sword", Name: "Sword", EquipSlot: &mainSlot,
			Properties: map[string]string{"damage_bonus": "10"},
		},
		"tmpl-armor": {
			ID: "tmpl-armor", Name: "Armor", EquipSlot: &chestSlot,
			Properties: map[string]string{"armor_defense": "8"},
		},
		"tmpl-rope": {ID: "tmpl-rope", Name: "Rope"}, // no equip slot
	}
}

func TestEquipSucceedsForMatchingSlot(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-sword", Quality: 10}

	next, err := Equip(c, equipTemplates(), "i1", items.SlotHandsMain)
	require.NoError(t, err)
	assert.Equal(t, "i1", next.Equipped[items.SlotHandsMain])
}

func TestEquipRejectsWrongSlot(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-sword", Quality: 10}

	_, err := Equip(c, equipTemplates(), "i1", items.SlotChest)
	require.Error(t, err)
	assert.Equal(t, rpgerr.CodeConditionNotMet, rpgerr.GetCode(err))
}

func TestEquipRejectsNonEquippable(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-rope"}

	_, err := Equip(c, equipTemplates(), "i1", items.SlotBack)
	require.Error(t, err)
	assert.Equal(t, rpgerr.CodeConditionNotMet, rpgerr.GetCode(err))
}

func TestEquipMissingInstanceRejected(t *testing.T) {
	c := NewComponent(50)
	_, err := Equip(c, equipTemplates(), "ghost", items.SlotHandsMain)
	require.Error(t, err)
	assert.Equal(t, rpgerr.CodeNotFoundEntity, rpgerr.GetCode(err))
}

func TestEquipSwapsOccupiedSlot(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-sword", Quality: 10}
	c.Instances["i2"] = items.Instance{ID: "i2", TemplateID: "tmpl-sword", Quality: 5}
	c.Equipped[items.SlotHandsMain] = "i1"

	next, err := Equip(c, equipTemplates(), "i2", items.SlotHandsMain)
	require.NoError(t, err)
	assert.Equal(t, "i2", next.Equipped[items.SlotHandsMain])
}

func TestUnequipClearsSlot(t *testing.T) {
	c := NewComponent(50)
	c.Equipped[items.SlotHandsMain] = "i1"

	next, err := Unequip(c, items.SlotHandsMain)
	require.NoError(t, err)
	assert.NotContains(t, next.Equipped, items.SlotHandsMain)
}

func TestUnequipEmptySlotRejected(t *testing.T) {
	c := NewComponent(50)
	_, err := Unequip(c, items.SlotHandsMain)
	require.Error(t, err)
	assert.Equal(t, rpgerr.CodeNotFoundEntity, rpgerr.GetCode(err))
}

func TestEffectiveWeaponBonusUsesEquippedQuality(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-sword", Quality: 7}
	c.Equipped[items.SlotHandsMain] = "i1"

	assert.Equal(t, 7, c.EffectiveWeaponBonus(equipTemplates(), 3))
}

func TestEffectiveWeaponBonusFallsBackToLegacyWhenUnequipped(t *testing.T) {
	c := NewComponent(50)
	assert.Equal(t, 3, c.EffectiveWeaponBonus(equipTemplates(), 3))
}

func TestEffectiveWeaponBonusFallsBackWhenPropertyAbsent(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-rope", Quality: 10}
	c.Equipped[items.SlotHandsMain] = "i1"

	assert.Equal(t, 3, c.EffectiveWeaponBonus(equipTemplates(), 3))
}

func TestEffectiveArmorDefenseUsesEquippedQuality(t *testing.T) {
	c := NewComponent(50)
	c.Instances["i1"] = items.Instance{ID: "i1", TemplateID: "tmpl-armor", Quality: 10}
	c.Equipped[items.SlotChest] = "i1"

	assert.Equal(t, 8, c.EffectiveArmorDefense(equipTemplates(), 2))
}

func TestEffectiveArmorDefenseFallsBackToLegacyWhenUnequipped(t *testing.T) {
	c := NewComponent(50)
	assert.Equal(t, 2, c.EffectiveArmorDefense(equipTemplates(), 2))
}
