package repo

import (
	"context"
	"database/sql"
)

// WorldSeed is the singleton row describing a world database (spec §3,
// invariant 8: one per database).
type WorldSeed struct {
	Seed            string
	GlobalLore      string
	StartingSpaceID string
}

// WorldSeedRepository persists the singleton WorldSeed row.
type WorldSeedRepository struct {
	db *DB
}

// NewWorldSeedRepository constructs a WorldSeedRepository over db.
func NewWorldSeedRepository(db *DB) *WorldSeedRepository {
	return &WorldSeedRepository{db: db}
}

// Save upserts the singleton world seed row.
func (r *WorldSeedRepository) Save(ctx context.Context, seed WorldSeed) error {
	sqlStr, args, err := builder.
		Insert("world_seed").
		Columns("id", "seed", "global_lore", "starting_space_id").
		Values(1, seed.Seed, seed.GlobalLore, seed.StartingSpaceID).
		Suffix("ON CONFLICT(id) DO UPDATE SET seed=excluded.seed, global_lore=excluded.global_lore, starting_space_id=excluded.starting_space_id").
		ToSql()
	if err != nil {
		return wrapErr("WorldSeedRepository.Save", err)
	}
	if _, err := r.db.Conn().ExecContext(ctx, sqlStr, args...); err != nil {
		return wrapErr("WorldSeedRepository.Save", err)
	}
	return nil
}

// Get returns the sole world seed row, or (nil, nil) if the world has not
// been initialized yet.
func (r *WorldSeedRepository) Get(ctx context.Context) (*WorldSeed, error) {
	sqlStr, args, err := builder.
		Select("seed", "global_lore", "starting_space_id").
		From("world_seed").
		Where("id = 1").
		ToSql()
	if err != nil {
		return nil, wrapErr("WorldSeedRepository.Get", err)
	}

	var seed WorldSeed
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(&seed.Seed, &seed.GlobalLore, &seed.StartingSpaceID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("WorldSeedRepository.Get", err)
	}
	return &seed, nil
}
