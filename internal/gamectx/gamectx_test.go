// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package gamectx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kirkdiggler/dungeonmaster/internal/gamectx"
)

// mockEntityRegistry is a test implementation of EntityRegistry.
type mockEntityRegistry struct {
	entities map[string]interface{}
}

func newMockEntityRegistry() *mockEntityRegistry {
	return &mockEntityRegistry{entities: make(map[string]interface{})}
}

func (m *mockEntityRegistry) GetEntity(id string) interface{} {
	return m.entities[id]
}

func (m *mockEntityRegistry) addEntity(id string, entity interface{}) {
	m.entities[id] = entity
}

// GameContextTestSuite tests GameContext creation and EntityRegistry access.
type GameContextTestSuite struct {
	suite.Suite
}

func (s *GameContextTestSuite) TestEmptyGameContext() {
	gameCtx := gamectx.NewGameContext(gamectx.GameContextConfig{})

	s.Require().NotNil(gameCtx)
	s.Require().NotNil(gameCtx.Entities())
	s.Nil(gameCtx.Entities().GetEntity("any-id"))
}

func (s *GameContextTestSuite) TestGameContextWithRegistry() {
	mockRegistry := newMockEntityRegistry()
	mockRegistry.addEntity("player-1", map[string]string{"name": "Hero"})

	gameCtx := gamectx.NewGameContext(gamectx.GameContextConfig{
		Entities: mockRegistry,
	})

	entity := gameCtx.Entities().GetEntity("player-1")
	s.NotNil(entity)
}

func (s *GameContextTestSuite) TestWithGameContextRoundTrip() {
	mockRegistry := newMockEntityRegistry()
	mockRegistry.addEntity("npc-1", map[string]string{"name": "Merchant"})
	gameCtx := gamectx.NewGameContext(gamectx.GameContextConfig{Entities: mockRegistry})

	ctx := gamectx.WithGameContext(context.Background(), gameCtx)

	registry, ok := gamectx.Entities(ctx)
	s.True(ok)
	s.NotNil(registry.GetEntity("npc-1"))
}

func (s *GameContextTestSuite) TestEntitiesMissingFromContext() {
	_, ok := gamectx.Entities(context.Background())
	s.False(ok)
}

func (s *GameContextTestSuite) TestRequireEntitiesPanicsWithoutContext() {
	s.Panics(func() {
		gamectx.RequireEntities(context.Background())
	})
}

func (s *GameContextTestSuite) TestRequireEntitiesReturnsRegistry() {
	mockRegistry := newMockEntityRegistry()
	gameCtx := gamectx.NewGameContext(gamectx.GameContextConfig{Entities: mockRegistry})
	ctx := gamectx.WithGameContext(context.Background(), gameCtx)

	registry := gamectx.RequireEntities(ctx)
	s.NotNil(registry)
}

func TestGameContextSuite(t *testing.T) {
	suite.Run(t, new(GameContextTestSuite))
}
