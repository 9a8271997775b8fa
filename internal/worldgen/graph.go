package worldgen

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// Layout is the coarse room-placement strategy for a subzone (spec §4.3
// step 1), grounded on dshills-dungo's BSP/grid/flood-fill carving styles.
type Layout string

// Layout kinds.
const (
	LayoutGrid      Layout = "Grid"
	LayoutBSP       Layout = "BSP"
	LayoutFloodFill Layout = "FloodFill"
)

// pickLayout selects a layout from difficulty tier and size estimate,
// rotating deterministically so the same (tier, size) always yields the
// same layout for a given subzone.
func pickLayout(rng interface{ IntN(int) int }, difficultyTier int) Layout {
	layouts := []Layout{LayoutGrid, LayoutBSP, LayoutFloodFill}
	if difficultyTier <= 3 {
		return LayoutGrid
	}
	return layouts[rng.IntN(len(layouts))]
}

type genEdge struct {
	targetID  string
	direction string
	hidden    bool
}

type genNode struct {
	id       string
	x, y     int
	nodeType repo.NodeType
	edges    []genEdge
}

// generateSubzoneGraph builds, validates (retrying on failure), and persists
// a subzone's node graph (spec §4.3 steps 1-6).
func (g *Generator) generateSubzoneGraph(ctx context.Context, subzone *repo.WorldChunk) error {
	rng := rngFor(g.worldSeed, subzone.ID)
	count := g.cfg.MinNodesPerSubzone + rng.IntN(g.cfg.MaxNodesPerSubzone-g.cfg.MinNodesPerSubzone+1)
	layout := pickLayout(rng, subzone.DifficultyTier)

	var nodes []*genNode
	var report *ValidationReport
	for attempt := 0; attempt <= g.cfg.MaxGraphRetries; attempt++ {
		nodes = buildNodeSet(rng, subzone.ID, count, layout)
		connectWithMST(nodes)
		addExtraEdges(rng, nodes)
		assignNodeTypes(nodes)

		report = Validate(nodes)
		if report.Passed || attempt == g.cfg.MaxGraphRetries {
			break
		}
		g.log.Warn("subzone graph validation failed, retrying",
			zap.String("subzone", subzone.ID), zap.Int("attempt", attempt))
	}
	if !report.Passed {
		g.log.Warn("accepting looser subzone layout after retries exhausted",
			zap.String("subzone", subzone.ID))
	}

	for _, n := range nodes {
		spaceChunk := repo.WorldChunk{
			ID: n.id, Level: repo.LevelSpace, ParentID: subzone.ID,
			BiomeTheme: subzone.BiomeTheme, DifficultyTier: subzone.DifficultyTier,
		}
		if err := g.chunks.Save(ctx, spaceChunk); err != nil {
			return err
		}
		subzone.Children = append(subzone.Children, n.id)

		edges := make([]repo.GraphEdge, 0, len(n.edges))
		for _, e := range n.edges {
			edges = append(edges, repo.GraphEdge{TargetID: e.targetID, Direction: e.direction, Hidden: e.hidden})
		}
		x, y := n.x, n.y
		node := repo.GraphNode{ID: n.id, ChunkID: subzone.ID, PosX: &x, PosY: &y, NodeType: n.nodeType, Edges: edges}
		if err := g.nodes.Save(ctx, node); err != nil {
			return err
		}
	}
	sort.Strings(subzone.Children)
	return g.chunks.Save(ctx, *subzone)
}

func buildNodeSet(rng interface{ IntN(int) int }, subzoneID string, count int, layout Layout) []*genNode {
	nodes := make([]*genNode, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:space:%d", subzoneID, i))).String()
		var x, y int
		switch layout {
		case LayoutGrid:
			side := int(math.Ceil(math.Sqrt(float64(count))))
			x, y = i%side, i/side
		case LayoutBSP:
			x, y = rng.IntN(count)*2, rng.IntN(count)*2
		default: // LayoutFloodFill
			x, y = rng.IntN(count*2)-count, rng.IntN(count*2)-count
		}
		nodes = append(nodes, &genNode{id: id, x: x, y: y})
	}
	return nodes
}

func dist(a, b *genNode) float64 {
	dx, dy := float64(a.x-b.x), float64(a.y-b.y)
	return math.Sqrt(dx*dx + dy*dy)
}

// connectWithMST links every node into one component via a Kruskal minimum
// spanning tree over euclidean distance (spec §4.3 step 3).
func connectWithMST(nodes []*genNode) {
	type candidate struct {
		i, j int
		w    float64
	}
	var candidates []candidate
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			candidates = append(candidates, candidate{i, j, dist(nodes[i], nodes[j])})
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].w < candidates[b].w })

	parent := make([]int, len(nodes))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	for _, c := range candidates {
		ri, rj := find(c.i), find(c.j)
		if ri == rj {
			continue
		}
		parent[ri] = rj
		linkNodes(nodes[c.i], nodes[c.j])
	}
}

// addExtraEdges adds ~20% additional edges (rounded up) beyond the spanning
// tree to introduce loops (spec §4.3 step 4).
func addExtraEdges(rng interface{ IntN(int) int }, nodes []*genNode) {
	extra := (len(nodes) + 4) / 5 // ceil(20% of n)
	if extra == 0 {
		extra = 1
	}

	type candidate struct {
		i, j int
		w    float64
	}
	var candidates []candidate
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if hasEdge(nodes[i], nodes[j].id) {
				continue
			}
			candidates = append(candidates, candidate{i, j, dist(nodes[i], nodes[j])})
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].w < candidates[b].w })

	added := 0
	for _, c := range candidates {
		if added >= extra {
			break
		}
		linkNodes(nodes[c.i], nodes[c.j])
		added++
	}
	_ = rng // reserved for future randomized tie-breaking among equal-weight candidates
}

func hasEdge(n *genNode, targetID string) bool {
	for _, e := range n.edges {
		if e.targetID == targetID {
			return true
		}
	}
	return false
}

func linkNodes(a, b *genNode) {
	a.edges = append(a.edges, genEdge{targetID: b.id, direction: directionBetween(a, b)})
	b.edges = append(b.edges, genEdge{targetID: a.id, direction: directionBetween(b, a)})
}

// directionBetween names the cardinal/intercardinal direction from a to b.
func directionBetween(a, b *genNode) string {
	dx, dy := b.x-a.x, b.y-a.y
	switch {
	case dx == 0 && dy < 0:
		return "north"
	case dx == 0 && dy > 0:
		return "south"
	case dy == 0 && dx > 0:
		return "east"
	case dy == 0 && dx < 0:
		return "west"
	case dx > 0 && dy < 0:
		return "northeast"
	case dx < 0 && dy < 0:
		return "northwest"
	case dx > 0 && dy > 0:
		return "southeast"
	case dx < 0 && dy > 0:
		return "southwest"
	default:
		return "nearby"
	}
}

// assignNodeTypes classifies nodes by position and degree (spec §4.3 step 5).
func assignNodeTypes(nodes []*genNode) {
	if len(nodes) == 0 {
		return
	}

	cx, cy := 0.0, 0.0
	for _, n := range nodes {
		cx += float64(n.x)
		cy += float64(n.y)
	}
	cx /= float64(len(nodes))
	cy /= float64(len(nodes))

	hubIdx := 0
	hubDist := math.Inf(1)
	for i, n := range nodes {
		d := math.Hypot(float64(n.x)-cx, float64(n.y)-cy)
		if d < hubDist {
			hubDist, hubIdx = d, i
		}
	}

	deepestIdx := deepestLeaf(nodes, hubIdx)

	leafIdxs := make([]int, 0)
	for i, n := range nodes {
		if len(n.edges) == 1 {
			leafIdxs = append(leafIdxs, i)
		}
	}
	sort.Slice(leafIdxs, func(a, b int) bool {
		da := math.Hypot(float64(nodes[leafIdxs[a]].x)-cx, float64(nodes[leafIdxs[a]].y)-cy)
		db := math.Hypot(float64(nodes[leafIdxs[b]].x)-cx, float64(nodes[leafIdxs[b]].y)-cy)
		return da > db
	})

	frontierCount := 0
	for _, idx := range leafIdxs {
		if idx == deepestIdx {
			continue
		}
		if frontierCount < 2 {
			nodes[idx].nodeType = repo.NodeFrontier
			frontierCount++
		}
	}

	for i, n := range nodes {
		switch {
		case i == hubIdx:
			n.nodeType = repo.NodeHub
		case i == deepestIdx:
			n.nodeType = repo.NodeBoss
		case n.nodeType == repo.NodeFrontier:
			// already assigned above
		case len(n.edges) <= 1:
			n.nodeType = repo.NodeDeadEnd
		case len(n.edges) >= 3:
			n.nodeType = repo.NodeBranching
		default:
			n.nodeType = repo.NodeLinear
		}
	}
}

// deepestLeaf finds the node farthest (by hop count) from startIdx via BFS.
func deepestLeaf(nodes []*genNode, startIdx int) int {
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		byID[n.id] = i
	}
	visited := make([]bool, len(nodes))
	dist := make([]int, len(nodes))
	queue := []int{startIdx}
	visited[startIdx] = true

	farthest := startIdx
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if dist[cur] > dist[farthest] {
			farthest = cur
		}
		for _, e := range nodes[cur].edges {
			ni := byID[e.targetID]
			if !visited[ni] {
				visited[ni] = true
				dist[ni] = dist[cur] + 1
				queue = append(queue, ni)
			}
		}
	}
	return farthest
}
