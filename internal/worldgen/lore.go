package worldgen

import "context"

// LoreExpander turns an ancestor-lore prompt into a concrete description
// (spec §4.3 "Lore inheritance... the LLM expands this into a specific
// description"). internal/llm's collaborator implements this structurally;
// worldgen only depends on the shape, not the package, to keep generation
// testable without a live model.
type LoreExpander interface {
	ExpandLore(ctx context.Context, prompt string) (string, error)
}

// nopExpander echoes the prompt back unexpanded. Used when no LoreExpander
// is configured (tests, or an engine running with LLM features disabled).
type nopExpander struct{}

func (nopExpander) ExpandLore(_ context.Context, prompt string) (string, error) {
	return prompt, nil
}

// buildLorePrompt concatenates ancestor lore in depth order (spec §4.3),
// from outermost (WORLD) to innermost (the chunk's direct parent).
func buildLorePrompt(ancestorLore []string, biomeTheme string) string {
	prompt := ""
	for i, lore := range ancestorLore {
		if lore == "" {
			continue
		}
		if i > 0 {
			prompt += " "
		}
		prompt += lore
	}
	if biomeTheme != "" {
		if prompt != "" {
			prompt += " "
		}
		prompt += "Biome: " + biomeTheme + "."
	}
	return prompt
}
