package social

import "github.com/kirkdiggler/dungeonmaster/internal/content"

// EmoteOutcome narrates the result of processing an emote against an NPC's
// current disposition band.
type EmoteOutcome struct {
	Narrative string
	Resolved  bool // false when the keyword has no table entry (fails softly)
}

// ProcessEmote resolves keyword against comp's disposition band via table
// and applies the matched delta (spec §4.8 "a table maps (keyword ×
// disposition band) to narrative text and disposition delta. Unknown
// keywords fail softly"). On an unknown keyword comp is returned
// unchanged and Resolved is false.
func ProcessEmote(table *content.EmoteTable, comp Component, keyword string, tick int64) (Component, EmoteOutcome) {
	outcome, ok := table.Lookup(keyword, comp.Disposition)
	if !ok {
		return comp, EmoteOutcome{Narrative: "Nothing happens.", Resolved: false}
	}
	next := comp.WithEvent("EmoteReceived:"+keyword, outcome.Delta, tick)
	return next, EmoteOutcome{Narrative: outcome.Narrative, Resolved: true}
}
