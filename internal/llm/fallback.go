package llm

import (
	"context"

	"github.com/kirkdiggler/dungeonmaster/internal/intent"
)

// Fallback implements every LLM seam deterministically, without a network
// call. It is what internal/world wires in when config.HasLLM() is false
// (spec §6), and what tests use to exercise the seams without a live key.
type Fallback struct{}

// ExpandLore echoes the ancestor-lore prompt unexpanded, matching the
// behavior worldgen's own nopExpander already falls back to.
func (Fallback) ExpandLore(_ context.Context, prompt string) (string, error) {
	return prompt, nil
}

// MatchDirection never claims a fuzzy match it can't justify: phases 1 and
// 2 of nav's resolver already cover exact and near-miss spelling, so a
// fallback phase 3 that can't reason about language returns NoneSentinel.
func (Fallback) MatchDirection(_ context.Context, _ string, _ []string) (string, error) {
	return "NONE", nil
}

// ClassifyIntent returns Unknown: layer 1's rule-based recognizer is the
// only classifier available without a live model.
func (Fallback) ClassifyIntent(_ context.Context, _ string, _ intent.IntentContext) (string, error) {
	return `{"kind":"Unknown","args":[]}`, nil
}

// ExpandKnowledge matches social's own nopExpander fallback text.
func (Fallback) ExpandKnowledge(_ context.Context, _, _ string, _ []string, _ int, topic string) (string, error) {
	return "No one seems to know anything about " + topic + ".", nil
}

// CreateEmbedding produces a small deterministic vector from the text's
// byte content, so memory's chromem-go collection still has something
// consistent to index and search against with no model configured. It is
// not semantically meaningful — recall quality degrades to near-exact-text
// matching — but keeps spec §4.10's operations callable offline.
func (Fallback) CreateEmbedding(_ context.Context, text string) ([]float32, error) {
	const dims = 32
	vec := make([]float32, dims)
	for i, r := range text {
		vec[i%dims] += float32(r%97) / 97.0
	}
	return vec, nil
}
