package store

import (
	"sync"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/events"
)

// EntityReplaced is published on the event bus whenever an entity is
// created or replaced, so interested subscribers (quest tracker, front-end)
// can react without polling the store.
type EntityReplaced struct {
	ctx *events.EventContext
	Old *Entity // nil on first creation
	New Entity
}

// EventRef implements events.Event.
func (EntityReplaced) EventRef() *core.Ref {
	return &core.Ref{Module: "store", Type: "event", Value: "entity_replaced"}
}

// Context implements events.Event.
func (e EntityReplaced) Context() *events.EventContext {
	if e.ctx == nil {
		return events.NewEventContext()
	}
	return e.ctx
}

// Store is the C1 entity/component store: the in-memory authority for
// entities. Durable reflection belongs to internal/repo; Store never talks
// to disk.
type Store struct {
	mu   sync.RWMutex
	byID map[string]Entity
	// bySpace indexes entity ids per space for O(1)-amortized iteration.
	bySpace map[string]map[string]struct{}
	bus     events.EventBus
}

// New creates an empty Store. A nil bus is replaced with a no-op bus so
// callers that don't care about store events don't need a guard.
func New(bus events.EventBus) *Store {
	if bus == nil {
		bus = events.NewBus()
	}
	return &Store{
		byID:    make(map[string]Entity),
		bySpace: make(map[string]map[string]struct{}),
		bus:     bus,
	}
}

// Get returns the entity by id, or (zero, false) if absent.
func (s *Store) Get(entityID string) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[entityID]
	return e, ok
}

// ComponentOf returns the named component of an entity, or nil if the
// entity or the component is absent.
func (s *Store) ComponentOf(entityID string, kind core.ComponentKind) core.Component {
	e, ok := s.Get(entityID)
	if !ok {
		return nil
	}
	return e.ComponentOf(kind)
}

// EntitiesInSpace returns every entity currently present in a space, per
// the authoritative presence set invariant (spec §3 invariant 2).
func (s *Store) EntitiesInSpace(spaceID string) []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.bySpace[spaceID]
	out := make([]Entity, 0, len(ids))
	for id := range ids {
		out = append(out, s.byID[id])
	}
	return out
}

// All returns every entity currently in the store, regardless of space.
// Used by the persistence coordinator (C11) to flush the whole store.
func (s *Store) All() []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entity, 0, len(s.byID))
	for _, e := range s.byID {
		out = append(out, e)
	}
	return out
}

// Replace performs a snapshot replacement of an entity: previous callers
// holding an Entity value keep their (now-stale) handle, readers going
// through the Store see the new value immediately. Moves the space index
// if SpaceID changed.
func (s *Store) Replace(e Entity) {
	s.mu.Lock()
	old, existed := s.byID[e.ID]
	if existed && old.SpaceID != e.SpaceID {
		s.unindexSpaceLocked(old.ID, old.SpaceID)
	}
	if !existed || old.SpaceID != e.SpaceID {
		s.indexSpaceLocked(e.ID, e.SpaceID)
	}
	s.byID[e.ID] = e
	s.mu.Unlock()

	var oldPtr *Entity
	if existed {
		oldPtr = &old
	}
	_ = s.bus.Publish(EntityReplaced{Old: oldPtr, New: e})
}

// Attach replaces entityID's component of the new component's kind and
// persists the update via Replace.
func (s *Store) Attach(entityID string, c core.Component) (Entity, bool) {
	e, ok := s.Get(entityID)
	if !ok {
		return Entity{}, false
	}
	next := e.WithComponent(c)
	s.Replace(next)
	return next, true
}

// Detach removes entityID's component of the given kind and persists the
// update via Replace.
func (s *Store) Detach(entityID string, kind core.ComponentKind) (Entity, bool) {
	e, ok := s.Get(entityID)
	if !ok {
		return Entity{}, false
	}
	next := e.WithoutComponent(kind)
	s.Replace(next)
	return next, true
}

// Delete removes an entity entirely (used for corpse decay, looted corpses,
// defeated NPCs — spec §3 "Lifecycles").
func (s *Store) Delete(entityID string) {
	s.mu.Lock()
	e, ok := s.byID[entityID]
	if ok {
		s.unindexSpaceLocked(e.ID, e.SpaceID)
		delete(s.byID, entityID)
	}
	s.mu.Unlock()
}

func (s *Store) indexSpaceLocked(entityID, spaceID string) {
	if spaceID == "" {
		return
	}
	set, ok := s.bySpace[spaceID]
	if !ok {
		set = make(map[string]struct{})
		s.bySpace[spaceID] = set
	}
	set[entityID] = struct{}{}
}

func (s *Store) unindexSpaceLocked(entityID, spaceID string) {
	if spaceID == "" {
		return
	}
	if set, ok := s.bySpace[spaceID]; ok {
		delete(set, entityID)
		if len(set) == 0 {
			delete(s.bySpace, spaceID)
		}
	}
}
