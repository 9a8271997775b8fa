// Package persistence implements the C11 coordinator: it orchestrates
// Snapshot/Load/Autosave across internal/repo's individual repositories so
// no other package needs to know how many tables a full save touches.
//
// Snapshot writes each entity's own identity/location row plus its
// "volatile" component kinds (Combat, Inventory, Trading, Social,
// Knowledge) via the generic entity_snapshot table. It does not write
// skill components, world chunks or spaces. internal/skill's engine
// records only level-up and perk-unlock events, through
// SkillRepository.Append.
//
// Grounded on rgonzalez12-dbd-analytics's ParallelFetcher: independent,
// fail-soft fan-out over errgroup where a non-critical failure is
// captured into the result rather than aborting the batch.
package persistence
