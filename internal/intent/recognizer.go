package intent

import "context"

// Recognizer ties the two layers together: layer 1 runs first and only on
// Unknown does layer 2 get a chance (spec §4.5). Classifier may be nil, in
// which case an Unknown from layer 1 stays Unknown.
type Recognizer struct {
	Classifier Classifier
}

// NewRecognizer builds a Recognizer. Passing a nil classifier is valid and
// disables layer 2 entirely (useful in tests and for offline play).
func NewRecognizer(classifier Classifier) *Recognizer {
	return &Recognizer{Classifier: classifier}
}

// Recognize classifies phrase, falling back to the LLM layer when layer 1
// can't place it.
func (r *Recognizer) Recognize(ctx context.Context, phrase string, ictx IntentContext) (Intent, error) {
	first := matchLayer1(phrase)
	if first.Kind != Unknown {
		return first, nil
	}
	if r.Classifier == nil {
		return first, nil
	}
	return classifyLayer2(ctx, r.Classifier, phrase, ictx)
}
