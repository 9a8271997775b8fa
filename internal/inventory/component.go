package inventory

import (
	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/items"
)

// Well-known Template.Properties keys this package reads. The spec leaves
// the string→string properties map open-ended; these three are the
// numeric hooks weight capacity and equipment bonuses need.
const (
	PropertyWeight       = "weight"
	PropertyDamageBonus  = "damage_bonus"
	PropertyArmorDefense = "armor_defense"
)

// TemplateLookup resolves an item template by id. Kept as a plain
// synchronous interface (rather than ctx+error) so the weight/equip pure
// functions below stay deterministic and easy to test; the engine is
// responsible for populating it from internal/repo before calling in.
type TemplateLookup interface {
	Lookup(templateID string) (items.Template, bool)
}

// MapTemplateLookup is the simplest TemplateLookup: a pre-fetched map.
type MapTemplateLookup map[string]items.Template

func (m MapTemplateLookup) Lookup(templateID string) (items.Template, bool) {
	t, ok := m[templateID]
	return t, ok
}

// Component is the V2 inventory attribute (spec §3 "InventoryComponent"):
// owned instances, the equip-slot bijection, gold, and weight capacity.
type Component struct {
	Instances      map[string]items.Instance   // instanceID -> instance
	Equipped       map[items.EquipSlot]string  // slot -> instanceID
	Gold           int
	CapacityWeight float64
}

// Kind implements core.Component.
func (Component) Kind() core.ComponentKind { return core.ComponentInventory }

var _ core.Component = Component{}

// NewComponent builds an empty inventory with the given weight capacity.
func NewComponent(capacityWeight float64) Component {
	return Component{
		Instances:      make(map[string]items.Instance),
		Equipped:       make(map[items.EquipSlot]string),
		CapacityWeight: capacityWeight,
	}
}

func (c Component) cloneInstances() map[string]items.Instance {
	next := make(map[string]items.Instance, len(c.Instances)+1)
	for k, v := range c.Instances {
		next[k] = v
	}
	return next
}

func (c Component) cloneEquipped() map[items.EquipSlot]string {
	next := make(map[items.EquipSlot]string, len(c.Equipped)+1)
	for k, v := range c.Equipped {
		next[k] = v
	}
	return next
}

// EquippedInstance returns the instance occupying slot, if any.
func (c Component) EquippedInstance(slot items.EquipSlot) (items.Instance, bool) {
	id, ok := c.Equipped[slot]
	if !ok {
		return items.Instance{}, false
	}
	inst, ok := c.Instances[id]
	return inst, ok
}

// HasItem reports whether any owned instance references templateID (spec
// §4.4's ItemRequired condition; satisfies nav.InventoryChecker once
// wrapped by the engine).
func (c Component) HasItem(templateID string) bool {
	for _, inst := range c.Instances {
		if inst.TemplateID == templateID {
			return true
		}
	}
	return false
}
