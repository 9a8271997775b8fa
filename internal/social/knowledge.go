package social

import (
	"context"
	"strings"
)

// KnowledgeExpander prompts an LLM for an NPC's answer to a topic given
// its space context, personality, traits, and current disposition (spec
// §4.8). internal/llm's collaborator implements this structurally — same
// forward-reference seam as worldgen.LoreExpander and nav's checker
// interfaces, so social never imports internal/llm directly.
type KnowledgeExpander interface {
	ExpandKnowledge(ctx context.Context, spaceContext, personality string, traits []string, disposition int, topic string) (string, error)
}

// nopExpander is the fallback used when no KnowledgeExpander is
// configured (tests, or an engine running with LLM features disabled).
type nopExpander struct{}

func (nopExpander) ExpandKnowledge(_ context.Context, _, _ string, _ []string, _ int, topic string) (string, error) {
	return "No one seems to know anything about " + topic + ".", nil
}

// DefaultKnowledgeTTLTicks is how long a cached knowledge answer stays
// fresh before it is re-queried. The spec says "if present and not
// expired, reuse" without naming a duration; zero means entries never
// expire, which is the safer default since re-querying burns an LLM call.
const DefaultKnowledgeTTLTicks = int64(0)

func normalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// QueryKnowledge resolves topic against comp's cache, falling back to
// expander on a miss or expiry, and caches the result under the
// normalized topic (spec §4.8 example: re-asking "wares" must not
// re-invoke the LLM).
func QueryKnowledge(
	ctx context.Context,
	expander KnowledgeExpander,
	ttlTicks int64,
	nowTick int64,
	comp KnowledgeComponent,
	spaceContext, personality string,
	traits []string,
	disposition int,
	topic string,
) (KnowledgeComponent, string, error) {
	norm := normalizeTopic(topic)
	if entry, ok := comp.Get(norm); ok {
		if ttlTicks <= 0 || nowTick-entry.Timestamp < ttlTicks {
			return comp, entry.Answer, nil
		}
	}

	if expander == nil {
		expander = nopExpander{}
	}
	answer, err := expander.ExpandKnowledge(ctx, spaceContext, personality, traits, disposition, norm)
	if err != nil {
		return comp, "", err
	}
	next := comp.With(norm, KnowledgeEntry{Question: topic, Answer: answer, Timestamp: nowTick})
	return next, answer, nil
}
