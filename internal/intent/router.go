package intent

import (
	"context"
	"fmt"
	"sync"
)

// Handler executes a recognized Intent for the given actor.
type Handler func(ctx context.Context, actorID string, in Intent) (any, error)

// Router dispatches intents to registered handlers by Kind. Grounded on
// pipeline.Registry's mutex-guarded map, keyed here by Kind rather than a
// ref string.
type Router struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
}

// NewRouter builds an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[Kind]Handler)}
}

// Register binds a handler to a Kind, overwriting any prior registration.
func (r *Router) Register(kind Kind, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
}

// Dispatch looks up the handler for in.Kind and invokes it.
func (r *Router) Dispatch(ctx context.Context, actorID string, in Intent) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[in.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("intent: no handler registered for %s", in.Kind)
	}
	return h(ctx, actorID, in)
}
