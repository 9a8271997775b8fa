package social

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/content"
	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/events"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

// EntityStore is the narrow store seam the engine needs, matching the
// shape combat.EntityStore and skill.EntityStore already established.
type EntityStore interface {
	Get(entityID string) (store.Entity, bool)
	Replace(e store.Entity)
}

// Engine resolves disposition events, emotes, knowledge queries, and
// persuasion/intimidation challenges against the in-memory store. Unlike
// C6/C7, social carries no dedicated append-only repo log — its state is
// fully captured by the Social/Knowledge components themselves, so
// persistence is left to C11's generic component snapshot.
type Engine struct {
	Store     EntityStore
	Roller    dice.Roller
	Emotes    *content.EmoteTable
	Expander  KnowledgeExpander
	KnowledgeTTLTicks int64
	Bus       events.EventBus
	NowTick   func() int64
}

func socialOf(e store.Entity) Component {
	c, _ := e.ComponentOf(core.ComponentSocial).(Component)
	return c
}

func knowledgeOf(e store.Entity) KnowledgeComponent {
	c, ok := e.ComponentOf(core.ComponentKnowledge).(KnowledgeComponent)
	if !ok {
		return NewKnowledgeComponent()
	}
	return c
}

func (e *Engine) publish(ev events.Event) {
	if e.Bus == nil {
		return
	}
	_ = e.Bus.Publish(ev)
}

// ApplyEventTo fetches npcID's Social component, applies kind's delta, and
// persists the update.
func (e *Engine) ApplyEventTo(ctx context.Context, npcID, kind string) (Component, error) {
	entity, ok := e.Store.Get(npcID)
	if !ok {
		return Component{}, fmt.Errorf("social: entity %s not found", npcID)
	}
	comp := ApplyEvent(socialOf(entity), kind, e.tick())
	e.Store.Replace(entity.WithComponent(comp))
	return comp, nil
}

// Emote resolves a keyword emote against npcID.
func (e *Engine) Emote(ctx context.Context, npcID, keyword string) (EmoteOutcome, error) {
	entity, ok := e.Store.Get(npcID)
	if !ok {
		return EmoteOutcome{}, fmt.Errorf("social: entity %s not found", npcID)
	}
	table := e.Emotes
	if table == nil {
		table = content.NewEmoteTable()
	}
	comp, outcome := ProcessEmote(table, socialOf(entity), keyword, e.tick())
	e.Store.Replace(entity.WithComponent(comp))
	return outcome, nil
}

// AskQuestion resolves a knowledge query against npcID's Knowledge
// component, applying the QuestionAsked disposition delta regardless of
// cache hit or miss (spec §4.8 example: "re-asking returns cached answer
// without LLM call" but the event still applies).
func (e *Engine) AskQuestion(ctx context.Context, npcID, spaceContext, topic string) (string, error) {
	entity, ok := e.Store.Get(npcID)
	if !ok {
		return "", fmt.Errorf("social: entity %s not found", npcID)
	}
	social := socialOf(entity)
	knowledge := knowledgeOf(entity)

	nextKnowledge, answer, err := QueryKnowledge(ctx, e.Expander, e.KnowledgeTTLTicks, e.tick(), knowledge,
		spaceContext, social.Personality, social.Traits, social.Disposition, topic)
	if err != nil {
		return "", err
	}

	nextSocial := ApplyEvent(social, "QuestionAsked", e.tick())
	updated := entity.WithComponent(nextSocial).WithComponent(nextKnowledge)
	e.Store.Replace(updated)
	return answer, nil
}

// AttemptChallenge resolves a persuasion/intimidation Challenge for an
// attacker of attackerLevel against npcID.
func (e *Engine) AttemptChallenge(ctx context.Context, npcID string, attackerLevel int, challenge Challenge) (ChallengeOutcome, error) {
	entity, ok := e.Store.Get(npcID)
	if !ok {
		return ChallengeOutcome{}, fmt.Errorf("social: entity %s not found", npcID)
	}
	comp, outcome, err := AttemptChallenge(ctx, e.Roller, attackerLevel, socialOf(entity), challenge, e.tick())
	if err != nil {
		return ChallengeOutcome{}, err
	}
	e.Store.Replace(entity.WithComponent(comp))
	if outcome.Succeeded {
		e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s challenge %s succeeded against %s", challenge.Kind, challenge.ID, npcID)))
	}
	return outcome, nil
}

func (e *Engine) tick() int64 {
	if e.NowTick == nil {
		return 0
	}
	return e.NowTick()
}
