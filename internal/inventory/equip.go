package inventory

import (
	"strconv"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// Equip moves instanceID into slot, failing if the template can't go in
// that slot, and swapping out whatever already occupies it (spec §4.9
// "equip(instance, slot) → fails if slot incompatible with template,
// swaps if occupied").
func Equip(c Component, templates TemplateLookup, instanceID string, slot items.EquipSlot) (Component, error) {
	inst, ok := c.Instances[instanceID]
	if !ok {
		return c, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: instance "+instanceID+" not found")
	}
	tmpl, ok := templates.Lookup(inst.TemplateID)
	if !ok {
		return c, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: unknown template "+inst.TemplateID)
	}
	if tmpl.EquipSlot == nil || *tmpl.EquipSlot != slot {
		return c, rpgerr.New(rpgerr.CodeConditionNotMet, "inventory: "+tmpl.Name+" cannot be equipped in "+string(slot))
	}

	next := c
	next.Equipped = c.cloneEquipped()
	next.Equipped[slot] = instanceID
	return next, nil
}

// Unequip clears slot, returning NotFound if nothing was equipped there.
func Unequip(c Component, slot items.EquipSlot) (Component, error) {
	if _, ok := c.Equipped[slot]; !ok {
		return c, rpgerr.New(rpgerr.CodeNotFoundEntity, "inventory: nothing equipped in "+string(slot))
	}
	next := c
	next.Equipped = c.cloneEquipped()
	delete(next.Equipped, slot)
	return next, nil
}

func numericProperty(t items.Template, key string) int {
	raw, ok := t.Properties[key]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// EffectiveWeaponBonus resolves the equipped main-hand weapon's quality-
// scaled damage bonus, falling back to legacy when nothing equipped
// there carries the property (spec §3 "V2 equipped instance... wins over
// legacy weapon/armor bonus when present").
func (c Component) EffectiveWeaponBonus(templates TemplateLookup, legacy int) int {
	inst, ok := c.EquippedInstance(items.SlotHandsMain)
	if !ok {
		return legacy
	}
	tmpl, ok := templates.Lookup(inst.TemplateID)
	if !ok {
		return legacy
	}
	base := numericProperty(tmpl, PropertyDamageBonus)
	if base == 0 {
		return legacy
	}
	return int(float64(base) * inst.QualityScalar())
}

// EffectiveArmorDefense mirrors EffectiveWeaponBonus for the chest slot's
// armor_defense property.
func (c Component) EffectiveArmorDefense(templates TemplateLookup, legacy int) int {
	inst, ok := c.EquippedInstance(items.SlotChest)
	if !ok {
		return legacy
	}
	tmpl, ok := templates.Lookup(inst.TemplateID)
	if !ok {
		return legacy
	}
	base := numericProperty(tmpl, PropertyArmorDefense)
	if base == 0 {
		return legacy
	}
	return int(float64(base) * inst.QualityScalar())
}
