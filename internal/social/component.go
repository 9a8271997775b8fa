package social

import (
	"encoding/json"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
)

// EventLogCapacity bounds the Social component's recent-event FIFO (spec
// §4.8 "recent event log (bounded FIFO)").
const EventLogCapacity = 20

// MinDisposition and MaxDisposition bound every disposition score (spec
// §4.8, §4.1).
const (
	MinDisposition = -100
	MaxDisposition = 100
)

// HostileThreshold is the disposition at or below which an NPC attacks on
// sight (spec §4.8 "Hostility threshold is −100").
const HostileThreshold = -100

// LogEntry is one applied disposition-affecting event.
type LogEntry struct {
	Kind  string
	Delta int
	Tick  int64
}

// Component is the per-actor Social attribute: disposition toward a
// specific other actor, personality, traits, and the event log that
// produced the current disposition (spec §4.8).
type Component struct {
	Disposition         int
	Personality         string
	Traits              []string
	EventLog            []LogEntry
	attemptedChallenges map[string]bool
}

// Kind implements core.Component.
func (Component) Kind() core.ComponentKind { return core.ComponentSocial }

var _ core.Component = Component{}

// NewComponent builds a fresh Social component at neutral disposition.
func NewComponent(personality string, traits []string) Component {
	return Component{Personality: personality, Traits: traits}
}

func clampDisposition(v int) int {
	switch {
	case v < MinDisposition:
		return MinDisposition
	case v > MaxDisposition:
		return MaxDisposition
	default:
		return v
	}
}

// WithEvent returns a copy of c with delta applied to disposition (clamped)
// and the event appended to the log, trimming the oldest entry once the
// log exceeds EventLogCapacity.
func (c Component) WithEvent(kind string, delta int, tick int64) Component {
	next := c
	next.Disposition = clampDisposition(c.Disposition + delta)

	log := make([]LogEntry, len(c.EventLog), len(c.EventLog)+1)
	copy(log, c.EventLog)
	log = append(log, LogEntry{Kind: kind, Delta: delta, Tick: tick})
	if len(log) > EventLogCapacity {
		log = log[len(log)-EventLogCapacity:]
	}
	next.EventLog = log
	return next
}

// IsHostile reports whether disposition has reached the attack-on-sight
// threshold.
func (c Component) IsHostile() bool {
	return c.Disposition <= HostileThreshold
}

// HasAttempted reports whether challengeID has already been resolved
// against this actor (spec §4.8 "one attempt per challenge per NPC").
func (c Component) HasAttempted(challengeID string) bool {
	return c.attemptedChallenges[challengeID]
}

// WithAttempt returns a copy of c with challengeID marked attempted.
func (c Component) WithAttempt(challengeID string) Component {
	next := c
	attempted := make(map[string]bool, len(c.attemptedChallenges)+1)
	for k, v := range c.attemptedChallenges {
		attempted[k] = v
	}
	attempted[challengeID] = true
	next.attemptedChallenges = attempted
	return next
}

// componentJSON mirrors Component with attemptedChallenges exported, so the
// persistence coordinator's generic JSON snapshot round-trips the full
// component rather than silently dropping unexported state.
type componentJSON struct {
	Disposition         int
	Personality         string
	Traits              []string
	EventLog            []LogEntry
	AttemptedChallenges map[string]bool
}

// MarshalJSON implements json.Marshaler.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(componentJSON{
		Disposition:         c.Disposition,
		Personality:         c.Personality,
		Traits:              c.Traits,
		EventLog:            c.EventLog,
		AttemptedChallenges: c.attemptedChallenges,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Component) UnmarshalJSON(data []byte) error {
	var cj componentJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	c.Disposition = cj.Disposition
	c.Personality = cj.Personality
	c.Traits = cj.Traits
	c.EventLog = cj.EventLog
	c.attemptedChallenges = cj.AttemptedChallenges
	return nil
}

// KnowledgeEntry is one cached question/answer pair (spec §4.8
// "topic → KnowledgeEntry(question, answer, timestamp)").
type KnowledgeEntry struct {
	Question  string
	Answer    string
	Timestamp int64
}

// KnowledgeComponent is the per-actor Knowledge attribute: a normalized
// topic → cached answer map.
type KnowledgeComponent struct {
	entries map[string]KnowledgeEntry
}

// Kind implements core.Component.
func (KnowledgeComponent) Kind() core.ComponentKind { return core.ComponentKnowledge }

var _ core.Component = KnowledgeComponent{}

// NewKnowledgeComponent builds an empty Knowledge component.
func NewKnowledgeComponent() KnowledgeComponent {
	return KnowledgeComponent{entries: make(map[string]KnowledgeEntry)}
}

// Get returns the cached entry for a normalized topic, if any.
func (c KnowledgeComponent) Get(topic string) (KnowledgeEntry, bool) {
	e, ok := c.entries[topic]
	return e, ok
}

// With returns a copy of c with topic's entry set/replaced.
func (c KnowledgeComponent) With(topic string, e KnowledgeEntry) KnowledgeComponent {
	next := make(map[string]KnowledgeEntry, len(c.entries)+1)
	for k, v := range c.entries {
		next[k] = v
	}
	next[topic] = e
	return KnowledgeComponent{entries: next}
}

// MarshalJSON implements json.Marshaler, exporting the normally-unexported
// entries map so the persistence coordinator's generic JSON snapshot
// captures it.
func (c KnowledgeComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.entries)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *KnowledgeComponent) UnmarshalJSON(data []byte) error {
	entries := make(map[string]KnowledgeEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.entries = entries
	return nil
}
