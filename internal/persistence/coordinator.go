package persistence

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

func defaultNowTick() int64 { return time.Now().Unix() }

// DefaultAutosaveMoves and DefaultAutosaveInterval mirror
// internal/config's Config defaults (spec §4.11 "every N player moves
// [default 5] OR every configured wall-clock interval [default 2
// minutes], whichever comes first").
const (
	DefaultAutosaveMoves    = 5
	DefaultAutosaveInterval = 2 * time.Minute
)

// Coordinator orchestrates save/load across repositories (spec §4.11,
// "C11"). It owns no state of its own beyond the autosave move counter;
// the entity store and the repositories are shared with the rest of the
// engine.
type Coordinator struct {
	Store *store.Store

	Entities  *repo.EntityRepository
	Snapshots *repo.EntitySnapshotRepository
	Seeds     *repo.WorldSeedRepository
	Chunks    *repo.WorldChunkRepository
	Nodes     *repo.GraphNodeRepository
	Spaces    *repo.SpacePropertiesRepository
	Corpses   *repo.CorpseRepository

	AutosaveMoves    int
	AutosaveInterval time.Duration

	// NowTick supplies the current monotonic world tick, used to decide
	// which corpses have passed their decay deadline at Load. Defaults to
	// a wall-clock-seconds tick if left nil.
	NowTick func() int64

	Log *zap.Logger

	mu    sync.Mutex
	moves int
}

// New builds a Coordinator over db's repositories, sharing s as the live
// entity store. autosaveMoves <= 0 and autosaveInterval <= 0 fall back to
// the spec's defaults. A nil log is replaced with a no-op logger.
func New(s *store.Store, db *repo.DB, autosaveMoves int, autosaveInterval time.Duration, log *zap.Logger) *Coordinator {
	if autosaveMoves <= 0 {
		autosaveMoves = DefaultAutosaveMoves
	}
	if autosaveInterval <= 0 {
		autosaveInterval = DefaultAutosaveInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{
		Store:            s,
		Entities:         repo.NewEntityRepository(db),
		Snapshots:        repo.NewEntitySnapshotRepository(db),
		Seeds:            repo.NewWorldSeedRepository(db),
		Chunks:           repo.NewWorldChunkRepository(db),
		Nodes:            repo.NewGraphNodeRepository(db),
		Spaces:           repo.NewSpacePropertiesRepository(db),
		Corpses:          repo.NewCorpseRepository(db),
		AutosaveMoves:    autosaveMoves,
		AutosaveInterval: autosaveInterval,
		NowTick:          defaultNowTick,
		Log:              log,
	}
	return c
}

// ResetMoveCounter zeroes the move-triggered autosave counter, e.g. after
// an interval-triggered autosave so the two triggers don't double up.
func (c *Coordinator) ResetMoveCounter() {
	c.mu.Lock()
	c.moves = 0
	c.mu.Unlock()
}
