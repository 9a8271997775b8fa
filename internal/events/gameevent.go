package events

import (
	"time"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
)

// GameEvent is the event sink contract (spec §6 "Event sink"): typed events
// with a monotonic timestamp, fire-and-forget to subscribers. Unlike the
// internal Event interface above (used for the synchronous in-process bus
// that drives conditions/effects), GameEvent is what crosses the boundary
// to the front-end / terminal log formatter — out of scope per spec §1,
// specified only by this interface.
type GameEvent interface {
	Event
	// Timestamp returns when the event was produced.
	Timestamp() time.Time
}

type base struct {
	ts time.Time
}

func (b base) Timestamp() time.Time { return b.ts }

func newBase() base { return base{ts: monotonicNow()} }

// monotonicNow is overridable in tests that need deterministic timestamps.
var monotonicNow = time.Now

// SystemLevel grades a System event's severity.
type SystemLevel string

// System levels.
const (
	SystemInfo    SystemLevel = "INFO"
	SystemWarning SystemLevel = "WARNING"
	SystemError   SystemLevel = "ERROR"
)

var gameEventRef = &core.Ref{Module: "engine", Type: "event", Value: "game_event"}

// Narrative is free-form room/action description text for the player.
type Narrative struct {
	base
	ctx  *EventContext
	Text string
}

// EventRef implements Event.
func (Narrative) EventRef() *core.Ref { return gameEventRef }

// Context implements Event.
func (n Narrative) Context() *EventContext {
	if n.ctx == nil {
		return NewEventContext()
	}
	return n.ctx
}

// NewNarrative builds a Narrative event with the current timestamp.
func NewNarrative(text string) Narrative {
	return Narrative{base: newBase(), Text: text}
}

// PlayerAction records the resolved intent a player performed, for logging
// and the scenario test harness (out of scope, §1, but this is its input
// contract).
type PlayerAction struct {
	base
	ctx      *EventContext
	PlayerID string
	Intent   string
	Summary  string
}

// EventRef implements Event.
func (PlayerAction) EventRef() *core.Ref { return gameEventRef }

// Context implements Event.
func (p PlayerAction) Context() *EventContext {
	if p.ctx == nil {
		return NewEventContext()
	}
	return p.ctx
}

// NewPlayerAction builds a PlayerAction event.
func NewPlayerAction(playerID, intent, summary string) PlayerAction {
	return PlayerAction{base: newBase(), PlayerID: playerID, Intent: intent, Summary: summary}
}

// Combat carries a single combat narration line (attack roll, damage,
// death, flee outcome).
type Combat struct {
	base
	ctx     *EventContext
	Summary string
}

// EventRef implements Event.
func (Combat) EventRef() *core.Ref { return gameEventRef }

// Context implements Event.
func (c Combat) Context() *EventContext {
	if c.ctx == nil {
		return NewEventContext()
	}
	return c.ctx
}

// NewCombat builds a Combat event.
func NewCombat(summary string) Combat {
	return Combat{base: newBase(), Summary: summary}
}

// System carries an engine-level message at a severity (spec §7:
// handlers catch domain errors locally and emit a System event instead of
// propagating).
type System struct {
	base
	ctx     *EventContext
	Level   SystemLevel
	Message string
}

// EventRef implements Event.
func (System) EventRef() *core.Ref { return gameEventRef }

// Context implements Event.
func (s System) Context() *EventContext {
	if s.ctx == nil {
		return NewEventContext()
	}
	return s.ctx
}

// NewSystem builds a System event.
func NewSystem(level SystemLevel, message string) System {
	return System{base: newBase(), Level: level, Message: message}
}

// Quest carries quest-state narration, optionally tied to a specific quest id.
type Quest struct {
	base
	ctx     *EventContext
	QuestID string // "" when not tied to a single quest
	Summary string
}

// EventRef implements Event.
func (Quest) EventRef() *core.Ref { return gameEventRef }

// Context implements Event.
func (q Quest) Context() *EventContext {
	if q.ctx == nil {
		return NewEventContext()
	}
	return q.ctx
}

// NewQuest builds a Quest event.
func NewQuest(questID, summary string) Quest {
	return Quest{base: newBase(), QuestID: questID, Summary: summary}
}

// StatusUpdate reports player vitals/location deltas for the front-end's
// HUD; any field may be nil/empty when unchanged.
type StatusUpdate struct {
	base
	ctx      *EventContext
	PlayerID string
	HP       *int
	MaxHP    *int
	Location string
}

// EventRef implements Event.
func (StatusUpdate) EventRef() *core.Ref { return gameEventRef }

// Context implements Event.
func (s StatusUpdate) Context() *EventContext {
	if s.ctx == nil {
		return NewEventContext()
	}
	return s.ctx
}

// NewStatusUpdate builds a StatusUpdate event.
func NewStatusUpdate(playerID string, hp, maxHP *int, location string) StatusUpdate {
	return StatusUpdate{base: newBase(), PlayerID: playerID, HP: hp, MaxHP: maxHP, Location: location}
}

// Sink is the fire-and-forget subscriber contract for GameEvents (spec §6).
// Dropped events must not stall the engine, so Emit never blocks on a full
// subscriber and never returns an error the caller must handle.
type Sink interface {
	Emit(GameEvent)
}

// ChanSink is a Sink backed by a buffered channel; a full buffer drops the
// event rather than blocking the world executor, matching "dropped events
// must not stall the engine."
type ChanSink struct {
	ch chan GameEvent
}

// NewChanSink creates a ChanSink with the given buffer size.
func NewChanSink(buffer int) *ChanSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChanSink{ch: make(chan GameEvent, buffer)}
}

// Emit implements Sink; drops the event if the buffer is full.
func (c *ChanSink) Emit(e GameEvent) {
	select {
	case c.ch <- e:
	default:
	}
}

// Events returns the receive side of the sink's channel for a subscriber
// (e.g. the CLI's render loop) to drain.
func (c *ChanSink) Events() <-chan GameEvent {
	return c.ch
}

var _ Sink = (*ChanSink)(nil)
