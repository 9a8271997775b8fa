package worldgen

import (
	"strings"

	"github.com/kirkdiggler/dungeonmaster/internal/dice"
)

// rngFor derives a deterministic roller from the world seed and a chunk id
// (spec §4.3 "Content placement... deterministically from the seed + chunk
// id"). Re-deriving per chunk, rather than sharing one stream across the
// whole generation run, means a subzone's content never depends on the
// order its siblings happened to generate in.
func rngFor(worldSeed, chunkID string) *dice.SeededRoller {
	var b strings.Builder
	b.WriteString(worldSeed)
	b.WriteByte(':')
	b.WriteString(chunkID)
	return dice.NewSeededRoller(b.String())
}
