package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

func TestHubNodeFindsTheHubAmongOthers(t *testing.T) {
	nodes := []*repo.GraphNode{
		{ID: "n1", NodeType: repo.NodeLinear},
		{ID: "n2", NodeType: repo.NodeHub},
		{ID: "n3", NodeType: repo.NodeDeadEnd},
	}
	hub := hubNode(nodes)
	if assert.NotNil(t, hub) {
		assert.Equal(t, "n2", hub.ID)
	}
}

func TestHubNodeReturnsNilWhenAbsent(t *testing.T) {
	nodes := []*repo.GraphNode{
		{ID: "n1", NodeType: repo.NodeLinear},
	}
	assert.Nil(t, hubNode(nodes))
}
