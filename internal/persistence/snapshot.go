package persistence

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kirkdiggler/dungeonmaster/internal/combat"
	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/inventory"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/social"
)

// snapshotDecoders rebuilds a concrete core.Component from its JSON blob,
// one entry per component kind with no dedicated typed table. ComponentSkill
// is absent on purpose: it is already durable via SkillRepository/SkillState
// (internal/skill/component.go wraps repo.SkillState directly). GraphNode
// and SpaceProperties are absent too: those belong to Feature entities
// backed directly by GraphNodeRepository/SpacePropertiesRepository, not
// this generic mechanism.
var snapshotDecoders = map[core.ComponentKind]func([]byte) (core.Component, error){
	core.ComponentCombat: func(data []byte) (core.Component, error) {
		var c combat.Component
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	},
	core.ComponentInventory: func(data []byte) (core.Component, error) {
		var c inventory.Component
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	},
	core.ComponentTrading: func(data []byte) (core.Component, error) {
		var c inventory.TradingComponent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	},
	core.ComponentSocial: func(data []byte) (core.Component, error) {
		var c social.Component
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	},
	core.ComponentKnowledge: func(data []byte) (core.Component, error) {
		var c social.KnowledgeComponent
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return c, nil
	},
}

func isVolatileKind(kind core.ComponentKind) bool {
	_, ok := snapshotDecoders[kind]
	return ok
}

// SaveFailure is one entity/component (or table) that failed to flush
// during a Snapshot.
type SaveFailure struct {
	EntityID string
	Kind     core.ComponentKind
	Err      error
}

// SaveReport is the outcome of one Snapshot flush (spec §7: "a subsequent
// load reports which tables were partially written").
type SaveReport struct {
	EntitiesWritten   int
	ComponentsFlushed int
	Failures          []SaveFailure
}

// Clean reports whether every write in the flush succeeded.
func (r *SaveReport) Clean() bool { return len(r.Failures) == 0 }

// Snapshot flushes every entity's base row and volatile component bag.
// Per spec §7, the flush is best-effort: each entity/component write is
// atomic at its own grain, and one failing doesn't stop the rest — it is
// recorded in the returned report instead. Never returns a non-nil error
// itself; a totally empty store is not an error.
func (c *Coordinator) Snapshot(ctx context.Context) (*SaveReport, error) {
	entities := c.Store.All()

	report := &SaveReport{}
	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, e := range entities {
		e := e
		g.Go(func() error {
			row := repo.EntityRow{ID: e.ID, Kind: string(e.Kind), Name: e.Name, Description: e.Description, SpaceID: e.SpaceID}
			if err := c.Entities.Save(ctx, row); err != nil {
				mu.Lock()
				report.Failures = append(report.Failures, SaveFailure{EntityID: e.ID, Err: err})
				mu.Unlock()
				c.Log.Warn("persistence: flush entity row failed", zap.String("entity", e.ID), zap.Error(err))
				return nil
			}
			mu.Lock()
			report.EntitiesWritten++
			mu.Unlock()
			return nil
		})

		for kind, comp := range e.Components() {
			if !isVolatileKind(kind) {
				continue
			}
			kind, comp := kind, comp
			g.Go(func() error {
				data, err := json.Marshal(comp)
				if err != nil {
					mu.Lock()
					report.Failures = append(report.Failures, SaveFailure{EntityID: e.ID, Kind: kind, Err: err})
					mu.Unlock()
					c.Log.Warn("persistence: encode component failed", zap.String("entity", e.ID), zap.String("kind", string(kind)), zap.Error(err))
					return nil
				}
				snap := repo.EntitySnapshot{EntityID: e.ID, ComponentKind: string(kind), Data: string(data)}
				if err := c.Snapshots.Save(ctx, snap); err != nil {
					mu.Lock()
					report.Failures = append(report.Failures, SaveFailure{EntityID: e.ID, Kind: kind, Err: err})
					mu.Unlock()
					c.Log.Warn("persistence: write snapshot failed", zap.String("entity", e.ID), zap.String("kind", string(kind)), zap.Error(err))
					return nil
				}
				mu.Lock()
				report.ComponentsFlushed++
				mu.Unlock()
				return nil
			})
		}
	}

	_ = g.Wait() // every Go func returns nil; failures are captured in report, not propagated
	return report, nil
}
