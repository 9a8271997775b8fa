package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
)

// Corpse is a player death artifact (spec §3).
type Corpse struct {
	ID                string
	PlayerID          string
	SpaceID           string
	InventorySnapshot map[string]any
	EquipmentSnapshot map[string]any
	GoldSnapshot      int
	DecayDeadline     int64 // monotonic tick
	Looted            bool
}

// CorpseRepository persists player corpses.
type CorpseRepository struct {
	db *DB
}

// NewCorpseRepository constructs a CorpseRepository over db.
func NewCorpseRepository(db *DB) *CorpseRepository {
	return &CorpseRepository{db: db}
}

var corpseColumns = []string{"id", "player_id", "space_id", "inventory_snapshot",
	"equipment_snapshot", "gold_snapshot", "decay_deadline", "looted"}

func scanCorpse(scan func(dest ...any) error) (*Corpse, error) {
	var c Corpse
	var inv, equip string
	if err := scan(&c.ID, &c.PlayerID, &c.SpaceID, &inv, &equip, &c.GoldSnapshot, &c.DecayDeadline, &c.Looted); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(inv), &c.InventorySnapshot); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(equip), &c.EquipmentSnapshot); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new corpse.
func (r *CorpseRepository) Create(ctx context.Context, c Corpse) error {
	inv, err := json.Marshal(c.InventorySnapshot)
	if err != nil {
		return wrapErr("CorpseRepository.Create", err)
	}
	equip, err := json.Marshal(c.EquipmentSnapshot)
	if err != nil {
		return wrapErr("CorpseRepository.Create", err)
	}
	sqlStr, args, err := builder.Insert("corpse").
		Columns(corpseColumns...).
		Values(c.ID, c.PlayerID, c.SpaceID, string(inv), string(equip), c.GoldSnapshot, c.DecayDeadline, c.Looted).
		ToSql()
	if err != nil {
		return wrapErr("CorpseRepository.Create", err)
	}
	return execUpdate(ctx, r.db, "CorpseRepository.Create", sqlStr, args)
}

// FindByID returns a corpse by id, or (nil, nil) if absent.
func (r *CorpseRepository) FindByID(ctx context.Context, id string) (*Corpse, error) {
	sqlStr, args, err := builder.Select(corpseColumns...).From("corpse").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, wrapErr("CorpseRepository.FindByID", err)
	}
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	c, err := scanCorpse(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("CorpseRepository.FindByID", err)
	}
	return c, nil
}

func (r *CorpseRepository) query(ctx context.Context, op string, where sq.Sqlizer, orderBy string) ([]*Corpse, error) {
	q := builder.Select(corpseColumns...).From("corpse").Where(where)
	if orderBy != "" {
		q = q.OrderBy(orderBy)
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, wrapErr(op, err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	var out []*Corpse
	for rows.Next() {
		c, err := scanCorpse(rows.Scan)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		out = append(out, c)
	}
	return out, wrapErr(op, rows.Err())
}

// FindByPlayerID returns every corpse belonging to playerID.
func (r *CorpseRepository) FindByPlayerID(ctx context.Context, playerID string) ([]*Corpse, error) {
	return r.query(ctx, "CorpseRepository.FindByPlayerID", sq.Eq{"player_id": playerID}, "id")
}

// FindBySpaceID returns every corpse currently in spaceID.
func (r *CorpseRepository) FindBySpaceID(ctx context.Context, spaceID string) ([]*Corpse, error) {
	return r.query(ctx, "CorpseRepository.FindBySpaceID", sq.Eq{"space_id": spaceID}, "id")
}

// FindDecayed returns unlooted corpses whose decay deadline has passed
// nowTick, ordered by decay deadline ascending (spec §4.2).
func (r *CorpseRepository) FindDecayed(ctx context.Context, nowTick int64) ([]*Corpse, error) {
	return r.query(ctx, "CorpseRepository.FindDecayed",
		sq.And{sq.LtOrEq{"decay_deadline": nowTick}, sq.Eq{"looted": false}}, "decay_deadline")
}

// MarkLooted flags a corpse as looted.
func (r *CorpseRepository) MarkLooted(ctx context.Context, id string) error {
	sqlStr, args, err := builder.Update("corpse").Set("looted", true).Where("id = ?", id).ToSql()
	if err != nil {
		return wrapErr("CorpseRepository.MarkLooted", err)
	}
	return execUpdate(ctx, r.db, "CorpseRepository.MarkLooted", sqlStr, args)
}

// DeleteBySpaceID removes every corpse in spaceID (e.g. clearing a space
// that is being regenerated).
func (r *CorpseRepository) DeleteBySpaceID(ctx context.Context, spaceID string) error {
	sqlStr, args, err := builder.Delete("corpse").Where("space_id = ?", spaceID).ToSql()
	if err != nil {
		return wrapErr("CorpseRepository.DeleteBySpaceID", err)
	}
	return execUpdate(ctx, r.db, "CorpseRepository.DeleteBySpaceID", sqlStr, args)
}

// Delete removes a single corpse by id (e.g. a decay sweep reaping one
// past-due corpse without touching others in the same space).
func (r *CorpseRepository) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.Delete("corpse").Where("id = ?", id).ToSql()
	if err != nil {
		return wrapErr("CorpseRepository.Delete", err)
	}
	return execUpdate(ctx, r.db, "CorpseRepository.Delete", sqlStr, args)
}
