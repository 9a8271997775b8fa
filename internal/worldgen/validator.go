package worldgen

import (
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// ValidationReport is the structured outcome of validating a subzone graph
// (spec §4.3 "Graph validator"), grounded on dshills-dungo's
// dungeon.ValidationReport hard/soft constraint split.
type ValidationReport struct {
	Passed           bool
	Reachable        bool
	HasCycle         bool
	AverageDegree    float64
	FrontierCount    int
	UnreachableNodes []string
	Errors           []string
}

// Validate checks the hard invariants from spec §3 invariant 9: reachability
// from the subzone's entry (the Hub), presence of at least one cycle,
// average degree over non-DeadEnd nodes >= 3.0, and >= 2 Frontier nodes.
func Validate(nodes []*genNode) *ValidationReport {
	report := &ValidationReport{Passed: true}
	if len(nodes) == 0 {
		report.Passed = false
		report.Errors = append(report.Errors, "empty node set")
		return report
	}

	entry := nodes[0]
	for _, n := range nodes {
		if n.nodeType == repo.NodeHub {
			entry = n
			break
		}
	}

	reachable := bfsReachable(nodes, entry.id)
	report.Reachable = len(reachable) == len(nodes)
	if !report.Reachable {
		report.Passed = false
		for _, n := range nodes {
			if !reachable[n.id] {
				report.UnreachableNodes = append(report.UnreachableNodes, n.id)
			}
		}
		report.Errors = append(report.Errors, fmt.Sprintf("%d nodes unreachable from entry", len(report.UnreachableNodes)))
	}

	report.HasCycle = hasCycle(nodes)
	if !report.HasCycle {
		report.Passed = false
		report.Errors = append(report.Errors, "graph contains no cycle")
	}

	degreeSum, degreeCount := 0, 0
	report.FrontierCount = 0
	for _, n := range nodes {
		if n.nodeType == repo.NodeFrontier {
			report.FrontierCount++
		}
		if n.nodeType == repo.NodeDeadEnd {
			continue
		}
		degreeSum += len(n.edges)
		degreeCount++
	}
	if degreeCount > 0 {
		report.AverageDegree = float64(degreeSum) / float64(degreeCount)
	}
	if report.AverageDegree < 3.0 {
		report.Passed = false
		report.Errors = append(report.Errors, fmt.Sprintf("average degree %.2f below 3.0", report.AverageDegree))
	}
	if report.FrontierCount < 2 {
		report.Passed = false
		report.Errors = append(report.Errors, fmt.Sprintf("only %d frontier nodes, need >= 2", report.FrontierCount))
	}

	return report
}

func bfsReachable(nodes []*genNode, startID string) map[string]bool {
	byID := make(map[string]*genNode, len(nodes))
	for _, n := range nodes {
		byID[n.id] = n
	}
	visited := map[string]bool{startID: true}
	queue := []string{startID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range byID[cur].edges {
			if !visited[e.targetID] {
				visited[e.targetID] = true
				queue = append(queue, e.targetID)
			}
		}
	}
	return visited
}

// hasCycle runs a DFS back-edge check over the undirected graph.
func hasCycle(nodes []*genNode) bool {
	byID := make(map[string]*genNode, len(nodes))
	for _, n := range nodes {
		byID[n.id] = n
	}
	visited := make(map[string]bool)

	var dfs func(id, parent string) bool
	dfs = func(id, parent string) bool {
		visited[id] = true
		for _, e := range byID[id].edges {
			if e.targetID == parent {
				continue
			}
			if visited[e.targetID] {
				return true
			}
			if dfs(e.targetID, id) {
				return true
			}
		}
		return false
	}

	for _, n := range nodes {
		if !visited[n.id] {
			if dfs(n.id, "") {
				return true
			}
		}
	}
	return false
}
