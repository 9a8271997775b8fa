package items

import "github.com/kirkdiggler/dungeonmaster/internal/core"

// EquipSlot is a closed set of equipment slots (spec §3).
type EquipSlot string

// Equipment slots. Not exhaustive of every conceivable slot, but closed:
// adding one is a one-line change here and a broadcast to every switch
// that matches on EquipSlot.
const (
	SlotHandsMain EquipSlot = "HANDS_MAIN"
	SlotHandsOff  EquipSlot = "HANDS_OFF"
	SlotHead      EquipSlot = "HEAD"
	SlotChest     EquipSlot = "CHEST"
	SlotLegs      EquipSlot = "LEGS"
	SlotFeet      EquipSlot = "FEET"
	SlotBack      EquipSlot = "BACK"
	SlotRingL     EquipSlot = "RING_L"
	SlotRingR     EquipSlot = "RING_R"
	SlotNeck      EquipSlot = "NECK"
)

// AllSlots is the closed enumeration of equip slots, in a stable order.
var AllSlots = []EquipSlot{
	SlotHandsMain, SlotHandsOff, SlotHead, SlotChest, SlotLegs,
	SlotFeet, SlotBack, SlotRingL, SlotRingR, SlotNeck,
}

// Rarity grades a template's scarcity; used by loot generation (C3) and
// trading price modifiers (C9).
type Rarity string

// Rarity tiers, common to legendary.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Template is the immutable, shared definition of an item kind. Multiple
// Instances may reference the same Template by ID.
type Template struct {
	ID          string
	Name        string
	Type        string
	Tags        []string
	Properties  map[string]string
	Rarity      Rarity
	Description string
	// EquipSlot is nil for items that can never be equipped.
	EquipSlot *EquipSlot
}

// HasTag reports whether the template carries the given tag. Tags drive
// ItemUseHandler dispatch in internal/inventory (flammable, explosive,
// container, blunt, sharp, throwable, fragile, light_source, climbable,
// liquid).
func (t *Template) HasTag(tag string) bool {
	for _, g := range t.Tags {
		if g == tag {
			return true
		}
	}
	return false
}

// Instance is a concrete, owned copy of a Template.
type Instance struct {
	ID         string
	TemplateID string
	Quality    int // 1..10
	Charges    *int
	Quantity   int
}

// GetID implements core.Entity.
func (i *Instance) GetID() string { return i.ID }

// GetType implements core.Entity.
func (i *Instance) GetType() string { return "item" }

var _ core.Entity = (*Instance)(nil)

// QualityScalar maps an instance's 1..10 quality to the multiplier applied
// to a template's base numeric properties (spec scenario 2: quality 7 on a
// damage-10 sword yields effective bonus 7).
func (i *Instance) QualityScalar() float64 {
	if i.Quality <= 0 {
		return 0
	}
	return float64(i.Quality) / 10.0
}
