// Package combat implements the turn-based, single-space combat resolver
// (spec §4.6, C6): attack/defense resolution, flee, and death handling.
//
// The Combat component's own State/weaponBonus/armorDefense vocabulary is
// a plain closed string enum plus int modifiers, sized to the spec's
// combatant (no class/proficiency system, no D&D attack/armor type
// taxonomy to import). The roll-vs-DC and opposed-roll shapes reuse
// rulebooks/dnd5e/saves' MakeSavingThrow pattern, already established in
// internal/nav.
//
// EquipmentLookup and DefenseChecker are forward-reference interfaces onto
// internal/inventory and internal/skill respectively — the same seam as
// worldgen.LoreExpander and nav.SkillChecker — so combat doesn't import
// packages built later in the dependency order.
package combat
