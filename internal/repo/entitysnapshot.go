package repo

import "context"

// EntitySnapshot is one component's durable state for one entity, keyed by
// (entityID, componentKind) with data held as an opaque JSON blob. This is
// the generic fallback persistence C6-C9's "volatile component" state
// relies on until/unless a component earns its own typed table (as
// SkillState and ItemTemplate/ItemInstance did).
type EntitySnapshot struct {
	EntityID      string
	ComponentKind string
	Data          string // JSON-encoded component value
}

// EntitySnapshotRepository persists arbitrary component snapshots, one row
// per (entity, component kind).
type EntitySnapshotRepository struct {
	db *DB
}

// NewEntitySnapshotRepository constructs an EntitySnapshotRepository over db.
func NewEntitySnapshotRepository(db *DB) *EntitySnapshotRepository {
	return &EntitySnapshotRepository{db: db}
}

// Save upserts one component's snapshot for entityID.
func (r *EntitySnapshotRepository) Save(ctx context.Context, s EntitySnapshot) error {
	sqlStr, args, err := builder.Insert("entity_snapshot").
		Columns("entity_id", "component_kind", "data").
		Values(s.EntityID, s.ComponentKind, s.Data).
		Suffix(`ON CONFLICT(entity_id, component_kind) DO UPDATE SET data=excluded.data`).
		ToSql()
	if err != nil {
		return wrapErr("EntitySnapshotRepository.Save", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("EntitySnapshotRepository.Save", err)
	}
	return nil
}

// FindByEntity returns every persisted component snapshot for entityID.
func (r *EntitySnapshotRepository) FindByEntity(ctx context.Context, entityID string) ([]EntitySnapshot, error) {
	sqlStr, args, err := builder.
		Select("entity_id", "component_kind", "data").
		From("entity_snapshot").Where("entity_id = ?", entityID).ToSql()
	if err != nil {
		return nil, wrapErr("EntitySnapshotRepository.FindByEntity", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("EntitySnapshotRepository.FindByEntity", err)
	}
	defer rows.Close()

	var out []EntitySnapshot
	for rows.Next() {
		var s EntitySnapshot
		if err := rows.Scan(&s.EntityID, &s.ComponentKind, &s.Data); err != nil {
			return nil, wrapErr("EntitySnapshotRepository.FindByEntity", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("EntitySnapshotRepository.FindByEntity", err)
	}
	return out, nil
}

// FindAll returns every persisted component snapshot across all entities,
// used to rehydrate the whole store on load.
func (r *EntitySnapshotRepository) FindAll(ctx context.Context) ([]EntitySnapshot, error) {
	sqlStr, args, err := builder.
		Select("entity_id", "component_kind", "data").
		From("entity_snapshot").ToSql()
	if err != nil {
		return nil, wrapErr("EntitySnapshotRepository.FindAll", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("EntitySnapshotRepository.FindAll", err)
	}
	defer rows.Close()

	var out []EntitySnapshot
	for rows.Next() {
		var s EntitySnapshot
		if err := rows.Scan(&s.EntityID, &s.ComponentKind, &s.Data); err != nil {
			return nil, wrapErr("EntitySnapshotRepository.FindAll", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("EntitySnapshotRepository.FindAll", err)
	}
	return out, nil
}

// DeleteByEntity removes every snapshot row for entityID (e.g. a looted,
// decayed corpse's owning entity is gone).
func (r *EntitySnapshotRepository) DeleteByEntity(ctx context.Context, entityID string) error {
	sqlStr, args, err := builder.Delete("entity_snapshot").Where("entity_id = ?", entityID).ToSql()
	if err != nil {
		return wrapErr("EntitySnapshotRepository.DeleteByEntity", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("EntitySnapshotRepository.DeleteByEntity", err)
	}
	return nil
}
