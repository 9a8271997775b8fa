// Package llm is the single collaborator through which every other engine
// package reaches a language model, without any of them importing this
// package directly. worldgen.LoreExpander, nav.LLMDirectionMatcher,
// intent.Classifier, social.KnowledgeExpander, and memory.Embedder each
// declare the narrow method shape they need; Collaborator satisfies all
// five structurally (spec §4.3, §4.4, §4.5, §4.8, §4.10).
//
// Grounded on theRebelliousNerd-codenerd's internal/embedding/genai.go,
// which wraps google.golang.org/genai's client behind a small engine type;
// Collaborator extends that same client to chat completion calls.
//
// When the engine config carries no API key, callers should wire in
// Fallback instead: deterministic, offline answers that keep every
// spec-level operation usable without a live model.
package llm
