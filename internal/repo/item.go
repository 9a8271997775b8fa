package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/kirkdiggler/dungeonmaster/internal/items"
)

// ItemRepository persists item templates and instances (spec §4.2, §3
// "Item model (V2)").
type ItemRepository struct {
	db *DB
}

// NewItemRepository constructs an ItemRepository over db.
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// SaveTemplate upserts an item template.
func (r *ItemRepository) SaveTemplate(ctx context.Context, t items.Template) error {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return wrapErr("ItemRepository.SaveTemplate", err)
	}
	props, err := json.Marshal(t.Properties)
	if err != nil {
		return wrapErr("ItemRepository.SaveTemplate", err)
	}
	var equipSlot any
	if t.EquipSlot != nil {
		equipSlot = string(*t.EquipSlot)
	}
	sqlStr, args, err := builder.Insert("item_template").
		Columns("id", "name", "item_type", "tags", "properties", "rarity", "description", "equip_slot").
		Values(t.ID, t.Name, t.Type, string(tags), string(props), string(t.Rarity), t.Description, equipSlot).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, item_type=excluded.item_type, tags=excluded.tags, properties=excluded.properties,
			rarity=excluded.rarity, description=excluded.description, equip_slot=excluded.equip_slot`).
		ToSql()
	if err != nil {
		return wrapErr("ItemRepository.SaveTemplate", err)
	}
	return execUpdate(ctx, r.db, "ItemRepository.SaveTemplate", sqlStr, args)
}

// FindTemplate returns a template by id, or (nil, nil) if absent.
func (r *ItemRepository) FindTemplate(ctx context.Context, id string) (*items.Template, error) {
	sqlStr, args, err := builder.
		Select("id", "name", "item_type", "tags", "properties", "rarity", "description", "equip_slot").
		From("item_template").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, wrapErr("ItemRepository.FindTemplate", err)
	}

	var t items.Template
	var tags, props, rarity string
	var equipSlot sql.NullString
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(&t.ID, &t.Name, &t.Type, &tags, &props, &rarity, &t.Description, &equipSlot); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("ItemRepository.FindTemplate", err)
	}
	t.Rarity = items.Rarity(rarity)
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return nil, wrapErr("ItemRepository.FindTemplate", err)
	}
	if err := json.Unmarshal([]byte(props), &t.Properties); err != nil {
		return nil, wrapErr("ItemRepository.FindTemplate", err)
	}
	if equipSlot.Valid {
		slot := items.EquipSlot(equipSlot.String)
		t.EquipSlot = &slot
	}
	return &t, nil
}

// SaveInstance upserts an item instance.
func (r *ItemRepository) SaveInstance(ctx context.Context, i items.Instance) error {
	var charges any
	if i.Charges != nil {
		charges = *i.Charges
	}
	sqlStr, args, err := builder.Insert("item_instance").
		Columns("id", "template_id", "quality", "charges", "quantity").
		Values(i.ID, i.TemplateID, i.Quality, charges, i.Quantity).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			template_id=excluded.template_id, quality=excluded.quality, charges=excluded.charges, quantity=excluded.quantity`).
		ToSql()
	if err != nil {
		return wrapErr("ItemRepository.SaveInstance", err)
	}
	return execUpdate(ctx, r.db, "ItemRepository.SaveInstance", sqlStr, args)
}

// FindInstance returns an item instance by id, or (nil, nil) if absent.
func (r *ItemRepository) FindInstance(ctx context.Context, id string) (*items.Instance, error) {
	sqlStr, args, err := builder.Select("id", "template_id", "quality", "charges", "quantity").
		From("item_instance").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, wrapErr("ItemRepository.FindInstance", err)
	}

	var i items.Instance
	var charges sql.NullInt64
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(&i.ID, &i.TemplateID, &i.Quality, &charges, &i.Quantity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("ItemRepository.FindInstance", err)
	}
	if charges.Valid {
		v := int(charges.Int64)
		i.Charges = &v
	}
	return &i, nil
}

// DeleteInstance removes an item instance by id.
func (r *ItemRepository) DeleteInstance(ctx context.Context, id string) error {
	sqlStr, args, err := builder.Delete("item_instance").Where("id = ?", id).ToSql()
	if err != nil {
		return wrapErr("ItemRepository.DeleteInstance", err)
	}
	return execUpdate(ctx, r.db, "ItemRepository.DeleteInstance", sqlStr, args)
}
