// Package skill implements the skill check, XP, and perk engine (spec
// §4.7, C7). The state machine shape (roll-vs-DC success, critical
// success/failure on natural 20/1) reuses the roll-vs-DC pattern already
// established in internal/nav and internal/combat, itself grounded on the
// teacher's rulebooks/dnd5e/saves.MakeSavingThrow.
//
// Engine.CheckSkill satisfies internal/nav's SkillChecker forward-reference
// interface; Engine.AttemptDefense satisfies internal/combat's
// DefenseChecker. Level-up and perk-unlock events are persisted
// immediately through repo.SkillRepository.Append; unlocks are not logged.
// Level/xp/buffs live only on the in-memory Component: the persistence
// coordinator's Snapshot does not write skill components.
package skill
