package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// NodeType classifies a graph node's role within a subzone (spec §3, §4.3).
type NodeType string

// Node types.
const (
	NodeHub        NodeType = "Hub"
	NodeLinear     NodeType = "Linear"
	NodeBranching  NodeType = "Branching"
	NodeDeadEnd    NodeType = "DeadEnd"
	NodeBoss       NodeType = "Boss"
	NodeFrontier   NodeType = "Frontier"
	NodeQuestable  NodeType = "Questable"
)

// GraphEdge connects a GraphNode to another node.
type GraphEdge struct {
	TargetID   string      `json:"targetId"`
	Direction  string      `json:"direction"`
	Hidden     bool        `json:"hidden"`
	Conditions []Condition `json:"conditions"`
}

// GraphNode is one node of a subzone's navigation graph (spec §3).
type GraphNode struct {
	ID       string
	ChunkID  string
	PosX     *int
	PosY     *int
	NodeType NodeType
	Edges    []GraphEdge
}

// GraphNodeRepository persists subzone navigation graphs.
type GraphNodeRepository struct {
	db *DB
}

// NewGraphNodeRepository constructs a GraphNodeRepository over db.
func NewGraphNodeRepository(db *DB) *GraphNodeRepository {
	return &GraphNodeRepository{db: db}
}

var graphNodeColumns = []string{"id", "chunk_id", "pos_x", "pos_y", "node_type", "edges"}

func scanGraphNode(scan func(dest ...any) error) (*GraphNode, error) {
	var n GraphNode
	var posX, posY sql.NullInt64
	var nodeType, edges string
	if err := scan(&n.ID, &n.ChunkID, &posX, &posY, &nodeType, &edges); err != nil {
		return nil, err
	}
	n.NodeType = NodeType(nodeType)
	if posX.Valid {
		v := int(posX.Int64)
		n.PosX = &v
	}
	if posY.Valid {
		v := int(posY.Int64)
		n.PosY = &v
	}
	if err := json.Unmarshal([]byte(edges), &n.Edges); err != nil {
		return nil, err
	}
	return &n, nil
}

// Save upserts a graph node (with its edges).
func (r *GraphNodeRepository) Save(ctx context.Context, n GraphNode) error {
	edges, err := json.Marshal(n.Edges)
	if err != nil {
		return wrapErr("GraphNodeRepository.Save", err)
	}
	var posX, posY any
	if n.PosX != nil {
		posX = *n.PosX
	}
	if n.PosY != nil {
		posY = *n.PosY
	}
	sqlStr, args, err := builder.Insert("graph_node").
		Columns("id", "chunk_id", "pos_x", "pos_y", "node_type", "edges").
		Values(n.ID, n.ChunkID, posX, posY, string(n.NodeType), string(edges)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			chunk_id=excluded.chunk_id, pos_x=excluded.pos_x, pos_y=excluded.pos_y,
			node_type=excluded.node_type, edges=excluded.edges`).
		ToSql()
	if err != nil {
		return wrapErr("GraphNodeRepository.Save", err)
	}
	return execUpdate(ctx, r.db, "GraphNodeRepository.Save", sqlStr, args)
}

// FindByID returns a node by id, or (nil, nil) if absent.
func (r *GraphNodeRepository) FindByID(ctx context.Context, id string) (*GraphNode, error) {
	sqlStr, args, err := builder.Select(graphNodeColumns...).From("graph_node").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, wrapErr("GraphNodeRepository.FindByID", err)
	}
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	n, err := scanGraphNode(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("GraphNodeRepository.FindByID", err)
	}
	return n, nil
}

// FindByChunk returns every node belonging to chunkID, ordered by id.
func (r *GraphNodeRepository) FindByChunk(ctx context.Context, chunkID string) ([]*GraphNode, error) {
	sqlStr, args, err := builder.Select(graphNodeColumns...).From("graph_node").
		Where("chunk_id = ?", chunkID).OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("GraphNodeRepository.FindByChunk", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("GraphNodeRepository.FindByChunk", err)
	}
	defer rows.Close()

	var out []*GraphNode
	for rows.Next() {
		n, err := scanGraphNode(rows.Scan)
		if err != nil {
			return nil, wrapErr("GraphNodeRepository.FindByChunk", err)
		}
		out = append(out, n)
	}
	return out, wrapErr("GraphNodeRepository.FindByChunk", rows.Err())
}

// Update replaces a node's mutable fields (type, position); node must exist.
func (r *GraphNodeRepository) Update(ctx context.Context, n GraphNode) error {
	existing, err := r.FindByID(ctx, n.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return rpgerr.New(rpgerr.CodeNotFoundEntity, "GraphNodeRepository.Update: node not found")
	}
	return r.Save(ctx, n)
}

// Delete removes a node by id.
func (r *GraphNodeRepository) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.Delete("graph_node").Where("id = ?", id).ToSql()
	if err != nil {
		return wrapErr("GraphNodeRepository.Delete", err)
	}
	return execUpdate(ctx, r.db, "GraphNodeRepository.Delete", sqlStr, args)
}

// AddEdge appends an edge to a node, rejecting duplicate targets and
// self-edges (spec §4.2).
func (r *GraphNodeRepository) AddEdge(ctx context.Context, nodeID string, edge GraphEdge) error {
	n, err := r.FindByID(ctx, nodeID)
	if err != nil {
		return err
	}
	if n == nil {
		return rpgerr.New(rpgerr.CodeNotFoundEntity, "GraphNodeRepository.AddEdge: node not found")
	}
	if edge.TargetID == nodeID {
		return rpgerr.New(rpgerr.CodeConflict, "GraphNodeRepository.AddEdge: self-edge rejected")
	}
	for _, e := range n.Edges {
		if e.TargetID == edge.TargetID {
			return rpgerr.New(rpgerr.CodeConflict, "GraphNodeRepository.AddEdge: duplicate edge")
		}
	}
	n.Edges = append(n.Edges, edge)
	return r.Save(ctx, *n)
}

// RemoveEdge removes the edge to targetID from nodeID, if present.
func (r *GraphNodeRepository) RemoveEdge(ctx context.Context, nodeID, targetID string) error {
	n, err := r.FindByID(ctx, nodeID)
	if err != nil {
		return err
	}
	if n == nil {
		return rpgerr.New(rpgerr.CodeNotFoundEntity, "GraphNodeRepository.RemoveEdge: node not found")
	}
	filtered := n.Edges[:0]
	for _, e := range n.Edges {
		if e.TargetID != targetID {
			filtered = append(filtered, e)
		}
	}
	n.Edges = filtered
	return r.Save(ctx, *n)
}

// GetAll returns every graph node in the database, ordered by id.
func (r *GraphNodeRepository) GetAll(ctx context.Context) ([]*GraphNode, error) {
	sqlStr, args, err := builder.Select(graphNodeColumns...).From("graph_node").OrderBy("id").ToSql()
	if err != nil {
		return nil, wrapErr("GraphNodeRepository.GetAll", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("GraphNodeRepository.GetAll", err)
	}
	defer rows.Close()

	var out []*GraphNode
	for rows.Next() {
		n, err := scanGraphNode(rows.Scan)
		if err != nil {
			return nil, wrapErr("GraphNodeRepository.GetAll", err)
		}
		out = append(out, n)
	}
	return out, wrapErr("GraphNodeRepository.GetAll", rows.Err())
}
