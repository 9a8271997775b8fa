package repo

import (
	"context"
	"database/sql"
)

// PedestalState is the lifecycle of a single treasure pedestal (spec §4.2).
type PedestalState string

// Pedestal states.
const (
	PedestalAvailable PedestalState = "AVAILABLE"
	PedestalLocked    PedestalState = "LOCKED"
	PedestalEmpty     PedestalState = "EMPTY"
)

// Pedestal is one treasure slot within a TreasureRoom.
type Pedestal struct {
	ID               string
	TreasureRoomID   string
	ItemTemplateID   string
	State            PedestalState
	PedestalIndex    int
	ThemeDescription string
}

// TreasureRoom is a space flagged as a high-value content site (spec §3, §4.3).
type TreasureRoom struct {
	SpaceID             string
	Type                string
	BiomeTheme          string
	CurrentlyTakenItem  string // "" when none
	HasBeenLooted       bool
	Pedestals           []Pedestal
}

// TreasureRoomRepository persists treasure rooms and their pedestals.
type TreasureRoomRepository struct {
	db *DB
}

// NewTreasureRoomRepository constructs a TreasureRoomRepository over db.
func NewTreasureRoomRepository(db *DB) *TreasureRoomRepository {
	return &TreasureRoomRepository{db: db}
}

// Save upserts a treasure room row and replaces its pedestal set.
func (r *TreasureRoomRepository) Save(ctx context.Context, t TreasureRoom) error {
	tx, err := r.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("TreasureRoomRepository.Save", err)
	}
	defer tx.Rollback()

	var takenItem any
	if t.CurrentlyTakenItem != "" {
		takenItem = t.CurrentlyTakenItem
	}
	sqlStr, args, err := builder.Insert("treasure_room").
		Columns("space_id", "room_type", "biome_theme", "currently_taken_item", "has_been_looted").
		Values(t.SpaceID, t.Type, t.BiomeTheme, takenItem, t.HasBeenLooted).
		Suffix(`ON CONFLICT(space_id) DO UPDATE SET
			room_type=excluded.room_type, biome_theme=excluded.biome_theme,
			currently_taken_item=excluded.currently_taken_item, has_been_looted=excluded.has_been_looted`).
		ToSql()
	if err != nil {
		return wrapErr("TreasureRoomRepository.Save", err)
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("TreasureRoomRepository.Save", err)
	}

	delSQL, delArgs, err := builder.Delete("treasure_pedestal").Where("treasure_room_id = ?", t.SpaceID).ToSql()
	if err != nil {
		return wrapErr("TreasureRoomRepository.Save", err)
	}
	if _, err := tx.ExecContext(ctx, delSQL, delArgs...); err != nil {
		return wrapErr("TreasureRoomRepository.Save", err)
	}

	for _, p := range t.Pedestals {
		pSQL, pArgs, err := builder.Insert("treasure_pedestal").
			Columns("id", "treasure_room_id", "item_template_id", "state", "pedestal_index", "theme_description").
			Values(p.ID, t.SpaceID, p.ItemTemplateID, string(p.State), p.PedestalIndex, p.ThemeDescription).
			ToSql()
		if err != nil {
			return wrapErr("TreasureRoomRepository.Save", err)
		}
		if _, err := tx.ExecContext(ctx, pSQL, pArgs...); err != nil {
			return wrapErr("TreasureRoomRepository.Save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("TreasureRoomRepository.Save", err)
	}
	return nil
}

// FindBySpaceID returns a treasure room with its pedestals, or (nil, nil).
func (r *TreasureRoomRepository) FindBySpaceID(ctx context.Context, spaceID string) (*TreasureRoom, error) {
	sqlStr, args, err := builder.
		Select("space_id", "room_type", "biome_theme", "currently_taken_item", "has_been_looted").
		From("treasure_room").Where("space_id = ?", spaceID).ToSql()
	if err != nil {
		return nil, wrapErr("TreasureRoomRepository.FindBySpaceID", err)
	}

	var t TreasureRoom
	var takenItem sql.NullString
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(&t.SpaceID, &t.Type, &t.BiomeTheme, &takenItem, &t.HasBeenLooted); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("TreasureRoomRepository.FindBySpaceID", err)
	}
	t.CurrentlyTakenItem = takenItem.String

	pSQL, pArgs, err := builder.
		Select("id", "treasure_room_id", "item_template_id", "state", "pedestal_index", "theme_description").
		From("treasure_pedestal").Where("treasure_room_id = ?", spaceID).OrderBy("pedestal_index").ToSql()
	if err != nil {
		return nil, wrapErr("TreasureRoomRepository.FindBySpaceID", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, pSQL, pArgs...)
	if err != nil {
		return nil, wrapErr("TreasureRoomRepository.FindBySpaceID", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Pedestal
		var state string
		if err := rows.Scan(&p.ID, &p.TreasureRoomID, &p.ItemTemplateID, &state, &p.PedestalIndex, &p.ThemeDescription); err != nil {
			return nil, wrapErr("TreasureRoomRepository.FindBySpaceID", err)
		}
		p.State = PedestalState(state)
		t.Pedestals = append(t.Pedestals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("TreasureRoomRepository.FindBySpaceID", err)
	}

	return &t, nil
}
