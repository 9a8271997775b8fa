package nav

import (
	"context"
	"sort"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// Resolution is the outcome of matching a direction phrase against a
// space's visible exits (spec §4.4: "resolve to Success(exit),
// Failure(reason), or Ambiguous(suggestions)").
type Resolution interface {
	isResolution()
}

// Resolved is returned when the phrase matched exactly one visible exit.
type Resolved struct {
	Exit repo.Exit
	// Phase records which phase produced the match, for logging/telemetry.
	Phase string
}

func (Resolved) isResolution() {}

// Unresolved is returned when no exit could be matched.
type Unresolved struct {
	Reason string
}

func (Unresolved) isResolution() {}

// AmbiguousMatch is returned when more than one exit is an equally good
// candidate.
type AmbiguousMatch struct {
	Suggestions []string
}

func (AmbiguousMatch) isResolution() {}

// maxFuzzyDistance bounds phase 2 (spec §4.4 phase 2: "edit distance <= 2").
const maxFuzzyDistance = 2

// LLMDirectionMatcher is the LLM fallback phase (spec §4.4 phase 3): given
// the raw phrase and the canonical direction strings, it must return one of
// them or the sentinel "NONE". internal/llm's collaborator satisfies this
// structurally; nav never imports internal/llm directly.
type LLMDirectionMatcher interface {
	MatchDirection(ctx context.Context, phrase string, candidates []string) (string, error)
}

// NoneSentinel is the value an LLMDirectionMatcher returns when it cannot
// match the phrase to any candidate.
const NoneSentinel = "NONE"

// MatchDirection runs the three-phase resolver (spec §4.4) against an
// already-computed visible exit list.
func MatchDirection(ctx context.Context, phrase string, visible []repo.Exit, llm LLMDirectionMatcher) Resolution {
	if len(visible) == 0 {
		return Unresolved{Reason: "no exits visible"}
	}

	norm := normalize(phrase)
	if norm == "" {
		return Unresolved{Reason: "empty direction"}
	}

	// Phase 1: exact match.
	for _, e := range visible {
		if normalize(e.Direction) == norm {
			return Resolved{Exit: e, Phase: "exact"}
		}
	}

	// Phase 2: fuzzy match, tie-broken by shortest distance.
	best := maxFuzzyDistance + 1
	var candidates []repo.Exit
	for _, e := range visible {
		d := editDistance(norm, normalize(e.Direction))
		if d > maxFuzzyDistance {
			continue
		}
		switch {
		case d < best:
			best = d
			candidates = []repo.Exit{e}
		case d == best:
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 1 {
		return Resolved{Exit: candidates[0], Phase: "fuzzy"}
	}
	if len(candidates) > 1 {
		return AmbiguousMatch{Suggestions: directionNames(candidates)}
	}

	// Phase 3: LLM parse, re-validated against the visible list.
	if llm == nil {
		return Unresolved{Reason: "no match"}
	}
	names := directionNames(visible)
	picked, err := llm.MatchDirection(ctx, phrase, names)
	if err != nil || picked == "" || picked == NoneSentinel {
		return Unresolved{Reason: "no match"}
	}
	for _, e := range visible {
		if e.Direction == picked {
			return Resolved{Exit: e, Phase: "llm"}
		}
	}
	// The LLM returned something outside the candidate list; reject rather
	// than trust it (spec §4.4: "re-validates the chosen direction").
	return Unresolved{Reason: "no match"}
}

func directionNames(exits []repo.Exit) []string {
	names := make([]string, 0, len(exits))
	for _, e := range exits {
		names = append(names, e.Direction)
	}
	sort.Strings(names)
	return names
}
