package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// buildValidGraph hand-builds a small graph that satisfies every invariant:
// reachable, cyclic, average degree >= 3 over non-DeadEnd nodes, and 2
// Frontier nodes.
func buildValidGraph() []*genNode {
	hub := &genNode{id: "hub", nodeType: repo.NodeHub}
	a := &genNode{id: "a", nodeType: repo.NodeBranching}
	b := &genNode{id: "b", nodeType: repo.NodeBranching}
	c := &genNode{id: "c", nodeType: repo.NodeBoss}
	f1 := &genNode{id: "f1", nodeType: repo.NodeFrontier}
	f2 := &genNode{id: "f2", nodeType: repo.NodeFrontier}

	link := func(x, y *genNode) {
		x.edges = append(x.edges, genEdge{targetID: y.id})
		y.edges = append(y.edges, genEdge{targetID: x.id})
	}
	link(hub, a)
	link(hub, b)
	link(hub, c)
	link(a, b)
	link(a, c)
	link(b, c)
	link(a, f1)
	link(b, f2)
	link(f1, f2)

	return []*genNode{hub, a, b, c, f1, f2}
}

func TestValidatePassesOnWellFormedGraph(t *testing.T) {
	report := Validate(buildValidGraph())
	require.NotNil(t, report)
	assert.True(t, report.Reachable)
	assert.True(t, report.HasCycle)
	assert.GreaterOrEqual(t, report.AverageDegree, 3.0)
	assert.GreaterOrEqual(t, report.FrontierCount, 2)
	assert.True(t, report.Passed, "errors: %v", report.Errors)
}

func TestValidateFailsOnUnreachableNode(t *testing.T) {
	nodes := buildValidGraph()
	orphan := &genNode{id: "orphan", nodeType: repo.NodeDeadEnd}
	nodes = append(nodes, orphan)

	report := Validate(nodes)
	assert.False(t, report.Passed)
	assert.False(t, report.Reachable)
	assert.Contains(t, report.UnreachableNodes, "orphan")
}

func TestValidateFailsWithNoCycle(t *testing.T) {
	hub := &genNode{id: "hub", nodeType: repo.NodeHub}
	a := &genNode{id: "a", nodeType: repo.NodeLinear}
	b := &genNode{id: "b", nodeType: repo.NodeLinear}
	f1 := &genNode{id: "f1", nodeType: repo.NodeFrontier}
	f2 := &genNode{id: "f2", nodeType: repo.NodeFrontier}

	link := func(x, y *genNode) {
		x.edges = append(x.edges, genEdge{targetID: y.id})
		y.edges = append(y.edges, genEdge{targetID: x.id})
	}
	link(hub, a)
	link(a, b)
	link(b, f1)
	link(b, f2)

	report := Validate([]*genNode{hub, a, b, f1, f2})
	assert.False(t, report.Passed)
	assert.False(t, report.HasCycle)
}

func TestValidateFailsOnLowAverageDegree(t *testing.T) {
	hub := &genNode{id: "hub", nodeType: repo.NodeHub}
	a := &genNode{id: "a", nodeType: repo.NodeLinear}
	f1 := &genNode{id: "f1", nodeType: repo.NodeFrontier}
	f2 := &genNode{id: "f2", nodeType: repo.NodeFrontier}

	link := func(x, y *genNode) {
		x.edges = append(x.edges, genEdge{targetID: y.id})
		y.edges = append(y.edges, genEdge{targetID: x.id})
	}
	link(hub, a)
	link(hub, f1)
	link(a, f2)
	link(hub, f2)

	report := Validate([]*genNode{hub, a, f1, f2})
	assert.False(t, report.Passed)
	assert.Less(t, report.AverageDegree, 3.0)
}

func TestValidateFailsOnInsufficientFrontierCount(t *testing.T) {
	nodes := buildValidGraph()
	for _, n := range nodes {
		if n.nodeType == repo.NodeFrontier {
			n.nodeType = repo.NodeBranching
		}
	}

	report := Validate(nodes)
	assert.False(t, report.Passed)
	assert.Equal(t, 0, report.FrontierCount)
}

func TestHasCycleDetectsSimpleTriangle(t *testing.T) {
	a := &genNode{id: "a"}
	b := &genNode{id: "b"}
	c := &genNode{id: "c"}
	a.edges = []genEdge{{targetID: "b"}, {targetID: "c"}}
	b.edges = []genEdge{{targetID: "a"}, {targetID: "c"}}
	c.edges = []genEdge{{targetID: "a"}, {targetID: "b"}}

	assert.True(t, hasCycle([]*genNode{a, b, c}))
}

func TestHasCycleFalseOnTree(t *testing.T) {
	a := &genNode{id: "a"}
	b := &genNode{id: "b"}
	c := &genNode{id: "c"}
	a.edges = []genEdge{{targetID: "b"}}
	b.edges = []genEdge{{targetID: "a"}, {targetID: "c"}}
	c.edges = []genEdge{{targetID: "b"}}

	assert.False(t, hasCycle([]*genNode{a, b, c}))
}
