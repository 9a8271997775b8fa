package world

import (
	"context"

	"go.uber.org/zap"

	"github.com/kirkdiggler/dungeonmaster/internal/gamectx"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

// storeRegistry adapts *store.Store to gamectx.EntityRegistry, so a
// handler running inside Exec can look up the live entity behind an id
// without importing internal/store directly.
type storeRegistry struct {
	store *store.Store
}

// GetEntity implements gamectx.EntityRegistry.
func (r *storeRegistry) GetEntity(id string) interface{} {
	e, ok := r.store.Get(id)
	if !ok {
		return nil
	}
	return e
}

// Exec is the single logical executor spec §5 requires: every command
// handler, LLM call, repo call, and event emission for one command runs
// inside one Exec call, and Exec calls never overlap. fn holding the lock
// across a blocking LLM or disk call is intentional — that is what "a
// suspension point does not release the logical lock" means here. It also
// carries a gamectx.GameContext over w.Store for the duration of fn, so
// handlers can reach the entity registry through ctx instead of holding
// their own *store.Store reference.
func (w *World) Exec(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	gameCtx := gamectx.NewGameContext(gamectx.GameContextConfig{Entities: &storeRegistry{store: w.Store}})
	return fn(gamectx.WithGameContext(ctx, gameCtx))
}

// StartAutosave begins the interval-triggered half of spec §4.11's
// autosave policy, routing every tick through Exec so it can never race a
// live command, and resetting the move counter on the same trigger path
// RecordMove uses for the move-count half. Returns a stop function; the
// caller (cmd/dungeonmaster) is expected to call it on shutdown.
func (w *World) StartAutosave(ctx context.Context) func() {
	runCtx, cancel := context.WithCancel(ctx)
	w.autosaveCancel = cancel

	w.Persist.RunAutosaveLoop(runCtx, func(triggerCtx context.Context) {
		_, err := w.Exec(triggerCtx, func(innerCtx context.Context) (any, error) {
			report, err := w.Persist.Snapshot(innerCtx)
			if err != nil {
				return nil, err
			}
			w.Persist.ResetMoveCounter()
			return report, nil
		})
		if err != nil {
			w.Log.Warn("world: interval autosave failed", zap.Error(err))
		}
	})

	return cancel
}
