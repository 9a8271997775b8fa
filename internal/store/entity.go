package store

import "github.com/kirkdiggler/dungeonmaster/internal/core"

// Entity is a polymorphic game object: a stable id, a closed Kind, display
// fields, a current-space pointer, and a typed component bag (spec §3).
// Entity values are immutable from the caller's perspective — Store.Replace
// never mutates an Entity already handed out, it stores a new value.
type Entity struct {
	ID          string
	Kind        core.EntityKind
	Name        string
	Description string
	SpaceID     string // "" for entities with no location (e.g. templates)

	components map[core.ComponentKind]core.Component
}

// GetID implements core.Entity.
func (e Entity) GetID() string { return e.ID }

// GetType implements core.Entity.
func (e Entity) GetType() string { return string(e.Kind) }

var _ core.Entity = Entity{}

// NewEntity creates an Entity with an empty component bag.
func NewEntity(id string, kind core.EntityKind, name, description, spaceID string) Entity {
	return Entity{
		ID:          id,
		Kind:        kind,
		Name:        name,
		Description: description,
		SpaceID:     spaceID,
		components:  make(map[core.ComponentKind]core.Component),
	}
}

// ComponentOf returns the component of the given kind, or nil if absent.
func (e Entity) ComponentOf(kind core.ComponentKind) core.Component {
	if e.components == nil {
		return nil
	}
	return e.components[kind]
}

// WithComponent returns a copy of e with the given component attached
// (replacing any existing component of the same kind). The original value
// is untouched — this is the "attribute bag as immutable update" invariant
// from spec §4.1.
func (e Entity) WithComponent(c core.Component) Entity {
	next := e.clone()
	next.components[c.Kind()] = c
	return next
}

// Components returns every component currently attached to e, keyed by
// kind. Used by the persistence coordinator (C11) to flush an entity's
// full component bag without knowing each kind in advance.
func (e Entity) Components() map[core.ComponentKind]core.Component {
	out := make(map[core.ComponentKind]core.Component, len(e.components))
	for k, v := range e.components {
		out[k] = v
	}
	return out
}

// WithoutComponent returns a copy of e with the given component kind removed.
func (e Entity) WithoutComponent(kind core.ComponentKind) Entity {
	next := e.clone()
	delete(next.components, kind)
	return next
}

// WithSpace returns a copy of e relocated to a new space id.
func (e Entity) WithSpace(spaceID string) Entity {
	next := e.clone()
	next.SpaceID = spaceID
	return next
}

func (e Entity) clone() Entity {
	next := e
	next.components = make(map[core.ComponentKind]core.Component, len(e.components)+1)
	for k, v := range e.components {
		next.components[k] = v
	}
	return next
}
