// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gamectx provides context wrapping for world state during event processing.
// It lets handlers, conditions, and skill checks query the live entity store without
// bloating every event with all possible data.
package gamectx

// EntityRegistry provides access to entity state during event processing.
type EntityRegistry interface {
	// GetEntity retrieves an entity by ID. Returns nil if not found.
	GetEntity(id string) interface{}
}

// GameContext carries world state through context.Context for use during event
// processing and condition/skill evaluation.
type GameContext struct {
	entities EntityRegistry
}

// GameContextConfig configures a new GameContext.
type GameContextConfig struct {
	// Entities provides access to entity state during event processing
	Entities EntityRegistry
}

// NewGameContext creates a new GameContext with the specified configuration.
// If no EntityRegistry is provided, a default empty registry is used.
func NewGameContext(config GameContextConfig) *GameContext {
	registry := config.Entities
	if registry == nil {
		registry = &emptyEntityRegistry{}
	}

	return &GameContext{
		entities: registry,
	}
}

// Entities returns the EntityRegistry for this GameContext.
func (g *GameContext) Entities() EntityRegistry {
	return g.entities
}

// emptyEntityRegistry is a default implementation that returns nil for all lookups.
type emptyEntityRegistry struct{}

func (e *emptyEntityRegistry) GetEntity(_ string) interface{} {
	return nil
}
