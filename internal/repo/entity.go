package repo

import (
	"context"
	"database/sql"
)

// EntityRow is an entity's durable identity/location: the fields store.Entity
// carries outside its component bag (spec §3 "Entity"). Component state is
// persisted separately, by SkillRepository/ItemRepository/EntitySnapshotRepository.
type EntityRow struct {
	ID          string
	Kind        string
	Name        string
	Description string
	SpaceID     string
}

// EntityRepository persists the base entity table.
type EntityRepository struct {
	db *DB
}

// NewEntityRepository constructs an EntityRepository over db.
func NewEntityRepository(db *DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// Save upserts one entity row.
func (r *EntityRepository) Save(ctx context.Context, e EntityRow) error {
	sqlStr, args, err := builder.Insert("entity").
		Columns("id", "kind", "name", "description", "space_id").
		Values(e.ID, e.Kind, e.Name, e.Description, e.SpaceID).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			kind=excluded.kind, name=excluded.name, description=excluded.description, space_id=excluded.space_id`).
		ToSql()
	if err != nil {
		return wrapErr("EntityRepository.Save", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("EntityRepository.Save", err)
	}
	return nil
}

func scanEntityRow(scan func(dest ...any) error) (*EntityRow, error) {
	var e EntityRow
	if err := scan(&e.ID, &e.Kind, &e.Name, &e.Description, &e.SpaceID); err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByID returns one entity row, or (nil, nil) if absent.
func (r *EntityRepository) FindByID(ctx context.Context, id string) (*EntityRow, error) {
	sqlStr, args, err := builder.Select("id", "kind", "name", "description", "space_id").
		From("entity").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, wrapErr("EntityRepository.FindByID", err)
	}
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	e, err := scanEntityRow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("EntityRepository.FindByID", err)
	}
	return e, nil
}

// FindAll returns every persisted entity row, used to rehydrate the store
// on load.
func (r *EntityRepository) FindAll(ctx context.Context) ([]*EntityRow, error) {
	sqlStr, args, err := builder.Select("id", "kind", "name", "description", "space_id").
		From("entity").ToSql()
	if err != nil {
		return nil, wrapErr("EntityRepository.FindAll", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("EntityRepository.FindAll", err)
	}
	defer rows.Close()

	var out []*EntityRow
	for rows.Next() {
		e, err := scanEntityRow(rows.Scan)
		if err != nil {
			return nil, wrapErr("EntityRepository.FindAll", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("EntityRepository.FindAll", err)
	}
	return out, nil
}

// Delete removes one entity row (e.g. a looted corpse's owning NPC, a
// consumed item instance's backing entity).
func (r *EntityRepository) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.Delete("entity").Where("id = ?", id).ToSql()
	if err != nil {
		return wrapErr("EntityRepository.Delete", err)
	}
	return execUpdate(ctx, r.db, "EntityRepository.Delete", sqlStr, args)
}
