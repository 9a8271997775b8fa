// Package nav implements the navigation and exit resolver (spec §4.4, C4):
// three-phase direction matching (exact, fuzzy, LLM-assisted), hidden-exit
// perception rolls, condition gating, and terrain cost calculation.
//
// The roll-a-d20-plus-modifier-against-a-DC shape is grounded on
// rpg-toolkit's rulebooks/dnd5e/saves.MakeSavingThrow: a Roller rolls, the
// engine adds a modifier, and success is total >= DC. SkillCheck and item
// gating are expressed as narrow interfaces (SkillChecker, InventoryChecker)
// rather than direct imports of internal/skill or internal/inventory, the
// same forward-reference seam internal/worldgen uses for LoreExpander.
package nav
