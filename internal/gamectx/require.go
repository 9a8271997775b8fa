// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package gamectx

import "context"

// gameContextKey is the key type for storing GameContext in context.Context.
type gameContextKey struct{}

// WithGameContext wraps a context.Context with the provided GameContext.
func WithGameContext(ctx context.Context, gameCtx *GameContext) context.Context {
	return context.WithValue(ctx, gameContextKey{}, gameCtx)
}

// Entities retrieves the EntityRegistry from the context.
// Returns the registry and true if found, nil and false otherwise.
func Entities(ctx context.Context) (EntityRegistry, bool) {
	if gameCtx, ok := ctx.Value(gameContextKey{}).(*GameContext); ok && gameCtx != nil {
		return gameCtx.Entities(), true
	}
	return nil, false
}

// RequireEntities retrieves the EntityRegistry from the context.
// Panics if no GameContext is present.
func RequireEntities(ctx context.Context) EntityRegistry {
	registry, ok := Entities(ctx)
	if !ok {
		panic("RequireEntities: no GameContext found in context")
	}
	return registry
}
