package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

func openTestDB(t *testing.T) *repo.DB {
	t.Helper()
	db, err := repo.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWorldSeedRepositoryGetEmpty(t *testing.T) {
	db := openTestDB(t)
	repoInst := repo.NewWorldSeedRepository(db)

	got, err := repoInst.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestWorldSeedRepositorySaveAndGet(t *testing.T) {
	db := openTestDB(t)
	repoInst := repo.NewWorldSeedRepository(db)
	ctx := context.Background()

	seed := repo.WorldSeed{Seed: "abc-123", GlobalLore: "a shattered world", StartingSpaceID: "space-1"}
	require.NoError(t, repoInst.Save(ctx, seed))

	got, err := repoInst.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, seed, *got)
}

func TestWorldSeedRepositorySaveIsUpsert(t *testing.T) {
	db := openTestDB(t)
	repoInst := repo.NewWorldSeedRepository(db)
	ctx := context.Background()

	require.NoError(t, repoInst.Save(ctx, repo.WorldSeed{Seed: "first", StartingSpaceID: "s1"}))
	require.NoError(t, repoInst.Save(ctx, repo.WorldSeed{Seed: "second", StartingSpaceID: "s2"}))

	got, err := repoInst.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "second", got.Seed)
}
