package persistence

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RecordMove registers one player move and, once AutosaveMoves has been
// reached, triggers an immediate Snapshot and resets the counter (spec
// §4.11: "triggers on every N player moves ... resets the move counter
// on either trigger"). Intended to be called from the world's single
// executor, so the Snapshot it triggers never races a live mutation.
func (c *Coordinator) RecordMove(ctx context.Context) (*SaveReport, error) {
	c.mu.Lock()
	c.moves++
	due := c.moves >= c.AutosaveMoves
	if due {
		c.moves = 0
	}
	c.mu.Unlock()

	if !due {
		return nil, nil
	}
	return c.Snapshot(ctx)
}

// RunAutosaveLoop starts a single background goroutine that calls trigger
// every AutosaveInterval until ctx is cancelled (spec §4.11: "single
// coroutine, cancel-safe"). The coordinator does not call Snapshot
// directly here: trigger is expected to route the save through the
// world's single-threaded executor (World.StartAutosave does) so an interval-fired
// autosave never runs concurrently with a live mutation. The caller
// should have trigger also call ResetMoveCounter, matching "resets the
// move counter on either trigger."
func (c *Coordinator) RunAutosaveLoop(ctx context.Context, trigger func(context.Context)) {
	go func() {
		ticker := time.NewTicker(c.AutosaveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Log.Info("persistence: interval autosave due", zap.Duration("interval", c.AutosaveInterval))
				trigger(ctx)
			}
		}
	}()
}
