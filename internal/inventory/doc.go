// Package inventory implements the weight-capacity inventory, equip-slot
// bijection, crafting, trading, and pickpocket/plant mechanics of spec
// §4.9 (C9), built on the template/instance split in internal/items.
//
// Grounded on the teacher's items package for the template/instance shape
// (see internal/items's own doc comment) and on internal/nav's
// forward-reference seam pattern: Engine.HasItem satisfies
// nav.InventoryChecker, and Engine.EffectiveWeaponBonus/
// EffectiveArmorDefense satisfy combat.EquipmentLookup, so neither
// nav nor combat import this package directly.
package inventory
