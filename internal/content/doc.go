// Package content holds the engine's data-driven tables: biome theme
// families (each with loot, encounter and feature tables), and the emote
// keyword × disposition-band narrative table (spec §4.8). Both tables are
// built into the code; ThemeTable.LoadYAML can merge a YAML theme pack over
// the built-in themes (grounded on dshills-dungo's pkg/themes, which loads
// ThemePack/LootTable/EncounterTable definitions the same way). The emote
// table has no YAML loader.
package content
