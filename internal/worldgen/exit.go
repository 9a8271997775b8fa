package worldgen

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// natural-phrase exit flavors, rotated deterministically per node so a
// Linear/Branching node occasionally reads as a ladder or door rather than
// a bare cardinal direction (spec §4.3 "Exit synthesis" (ii)).
var flavorPhrases = []string{"", "", "through the door", "climb the ladder", "down the passage"}

// synthesizeExits builds a space's exits from its persisted graph edges,
// occasionally attaching flavor descriptions, and rolling hidden exits with
// a Perception DC (spec §4.3 "Exit synthesis").
func synthesizeExits(_ context.Context, node *repo.GraphNode, _ *repo.GraphNodeRepository, rng interface{ IntN(int) int }) []repo.Exit {
	exits := make([]repo.Exit, 0, len(node.Edges))
	for i, e := range node.Edges {
		exit := repo.Exit{
			TargetID:  e.TargetID,
			Direction: e.Direction,
		}
		if phrase := flavorPhrases[rng.IntN(len(flavorPhrases))]; phrase != "" {
			exit.Description = fmt.Sprintf("a way out %s, %s", e.Direction, phrase)
		}

		// Roughly one edge in six is hidden, gated behind a Perception roll.
		if i%6 == 5 || e.Hidden {
			exit.Hidden = true
			exit.HiddenDifficulty = 12 + rng.IntN(6)
		}
		exit.Conditions = append(exit.Conditions, e.Conditions...)
		exits = append(exits, exit)
	}
	return exits
}
