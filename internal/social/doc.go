// Package social implements per-NPC disposition, emote processing,
// knowledge caching, and persuasion/intimidation challenges (spec §4.8,
// C8). Disposition and knowledge are split into two components —
// core.ComponentSocial and core.ComponentKnowledge — rather than one
// combined struct, since core's closed component-kind set already
// declares them separately; an entity that only needs lore (a Feature
// carrying a readable plaque) can carry Knowledge without Social.
//
// Disposition is a plain signed, clamped int log (LogEntry.Delta), sized to
// the spec's disposition score rather than a general modifier system.
// Grounded on internal/content's EmoteTable and EventDelta table for the
// data side. The opposed persuasion/intimidation roll reuses
// internal/skill.Opposed directly — social is built after skill in
// dependency order, so no forward-reference seam is needed here, unlike
// the LLM knowledge-expansion collaborator which is.
package social
