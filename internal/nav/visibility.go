package nav

import (
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// revealedFlag is the state-flag key set on a space once a hidden exit has
// been perceived (spec §3 example: "exit_hidden_passage_revealed").
func revealedFlag(direction string) string {
	return fmt.Sprintf("exit_%s_revealed", direction)
}

// VisibleExits returns the exits a player can currently see: every
// non-hidden exit, plus any hidden exit already revealed in props.Flags,
// plus any hidden exit that passes a Perception roll against its
// hiddenDifficulty the first time it is considered. A successful roll sets
// the revealed flag on props so future calls short-circuit the roll (spec
// §4.4 phase 1, §8 example 3).
func VisibleExits(props *repo.SpaceProperties, roller dice.Roller, perceptionModifier int) ([]repo.Exit, error) {
	if props.Flags == nil {
		props.Flags = map[string]bool{}
	}

	visible := make([]repo.Exit, 0, len(props.Exits))
	for _, e := range props.Exits {
		if !e.Hidden {
			visible = append(visible, e)
			continue
		}
		flag := revealedFlag(e.Direction)
		if props.Flags[flag] {
			visible = append(visible, e)
			continue
		}

		roll, err := roller.Roll(20)
		if err != nil {
			return nil, err
		}
		if roll+perceptionModifier >= e.HiddenDifficulty {
			props.Flags[flag] = true
			visible = append(visible, e)
		}
	}
	return visible, nil
}
