package social

import "github.com/kirkdiggler/dungeonmaster/internal/content"

// ApplyEvent looks up kind's signed delta in content.EventDelta and applies
// it to comp (spec §4.8: "Events... map to signed deltas; deltas clamp the
// new score... and append an entry to the event log"). An unrecognized
// kind is treated as a zero-delta event rather than an error, since the
// event taxonomy is open-ended ("...").
func ApplyEvent(comp Component, kind string, tick int64) Component {
	delta := content.EventDelta[kind]
	return comp.WithEvent(kind, delta, tick)
}
