package intent

import (
	"context"
	"encoding/json"
	"fmt"
)

// IntentContext carries what the LLM needs to disambiguate a phrase layer 1
// couldn't classify: the space's visible exits, nameable entities present,
// and the actor's carried items (spec §4.5).
type IntentContext struct {
	Exits     []string
	Entities  []string
	Inventory []string
}

// Classifier is the forward-reference seam onto internal/llm, mirroring
// worldgen.LoreExpander and nav.LLMDirectionMatcher: this package declares
// the narrow shape it needs rather than importing the collaborator.
type Classifier interface {
	ClassifyIntent(ctx context.Context, phrase string, ictx IntentContext) (string, error)
}

type classifyResponse struct {
	Kind Kind     `json:"kind"`
	Args []string `json:"args"`
}

// classifyLayer2 prompts the LLM for a single closed-set Kind (or the
// literal "Unknown") and re-validates the answer before trusting it — an
// LLM is never permitted to mint a new intent kind.
func classifyLayer2(ctx context.Context, classifier Classifier, phrase string, ictx IntentContext) (Intent, error) {
	raw, err := classifier.ClassifyIntent(ctx, phrase, ictx)
	if err != nil {
		return Intent{}, fmt.Errorf("intent: layer 2 classify: %w", err)
	}

	var resp classifyResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Intent{Kind: Unknown, Raw: phrase}, nil
	}

	if resp.Kind == Unknown || !Valid(resp.Kind) {
		return Intent{Kind: Unknown, Raw: phrase}, nil
	}

	return Intent{Kind: resp.Kind, Raw: phrase, Args: resp.Args}, nil
}
