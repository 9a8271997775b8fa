package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

func TestTreasureRoomRepositorySaveAndFind(t *testing.T) {
	db := openTestDB(t)
	rooms := repo.NewTreasureRoomRepository(db)
	ctx := context.Background()

	room := repo.TreasureRoom{
		SpaceID: "space-1", Type: "vault", BiomeTheme: "crypt",
		Pedestals: []repo.Pedestal{
			{ID: "p1", ItemTemplateID: "tmpl-sword", State: repo.PedestalAvailable, PedestalIndex: 0},
			{ID: "p2", ItemTemplateID: "tmpl-shield", State: repo.PedestalLocked, PedestalIndex: 1},
		},
	}
	require.NoError(t, rooms.Save(ctx, room))

	got, err := rooms.FindBySpaceID(ctx, "space-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "vault", got.Type)
	require.Len(t, got.Pedestals, 2)
	assert.Equal(t, "p1", got.Pedestals[0].ID)
	assert.Equal(t, repo.PedestalLocked, got.Pedestals[1].State)
}

func TestTreasureRoomRepositorySaveReplacesPedestals(t *testing.T) {
	db := openTestDB(t)
	rooms := repo.NewTreasureRoomRepository(db)
	ctx := context.Background()

	require.NoError(t, rooms.Save(ctx, repo.TreasureRoom{
		SpaceID: "space-1", Type: "vault", BiomeTheme: "crypt",
		Pedestals: []repo.Pedestal{
			{ID: "p1", ItemTemplateID: "tmpl-sword", State: repo.PedestalAvailable, PedestalIndex: 0},
		},
	}))

	require.NoError(t, rooms.Save(ctx, repo.TreasureRoom{
		SpaceID: "space-1", Type: "vault", BiomeTheme: "crypt", HasBeenLooted: true,
		Pedestals: []repo.Pedestal{
			{ID: "p2", ItemTemplateID: "tmpl-shield", State: repo.PedestalEmpty, PedestalIndex: 0},
		},
	}))

	got, err := rooms.FindBySpaceID(ctx, "space-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.HasBeenLooted)
	require.Len(t, got.Pedestals, 1)
	assert.Equal(t, "p2", got.Pedestals[0].ID)
}

func TestTreasureRoomRepositoryFindMissing(t *testing.T) {
	db := openTestDB(t)
	rooms := repo.NewTreasureRoomRepository(db)

	got, err := rooms.FindBySpaceID(context.Background(), "no-such-space")
	require.NoError(t, err)
	assert.Nil(t, got)
}
