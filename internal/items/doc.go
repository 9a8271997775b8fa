// Package items provides the template/instance item model (spec §3 "Item
// model (V2)"): immutable, shared ItemTemplate records and per-owner
// ItemInstance records that reference them.
//
// Templates carry everything that does not vary per copy of an item (name,
// type, tags, rarity, base properties, optional equip slot). Instances carry
// per-copy state: quality (which scales effective bonuses, see
// internal/inventory), optional charges, and quantity for stackables.
//
// Grounded on the teacher's items package (KirkDiggler/rpg-toolkit/items),
// which already separates "what an item is" from game-specific mechanics;
// this package keeps that split but replaces the D&D-specific
// weapon/armor/consumable interface hierarchy with the spec's flatter
// template+instance model, since the spec has no class/proficiency system
// to gate equipment.
package items
