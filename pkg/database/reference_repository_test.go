package database

import (
	"context"
	"testing"
	"time"

	"github.com/latoulicious/tyria/pkg/gw2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRepository_Items(t *testing.T) {
	repo := setupTestDatabase(t).ReferenceRepository()
	ctx := context.Background()

	items := []gw2.Item{
		{ID: 48073, Name: "Viper's Visor", Details: &gw2.ItemDetails{InfixUpgrade: &gw2.InfixUpgrade{ID: 1130}}},
		{ID: 24836, Name: "Superior Rune of the Scholar"},
	}
	require.NoError(t, repo.CacheItems(ctx, items, time.Hour))

	cached, err := repo.GetItems(ctx, []int{48073, 24836, 1})
	require.NoError(t, err)
	require.Len(t, cached, 2)

	assert.Equal(t, "Viper's Visor", cached[48073].Name)
	item := cached[48073]
	statID, ok := item.IntrinsicStatID()
	assert.True(t, ok)
	assert.Equal(t, 1130, statID)

	_, found := cached[1]
	assert.False(t, found)
}

func TestReferenceRepository_ItemsEmptyQuery(t *testing.T) {
	repo := setupTestDatabase(t).ReferenceRepository()

	cached, err := repo.GetItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestReferenceRepository_ItemStats(t *testing.T) {
	repo := setupTestDatabase(t).ReferenceRepository()
	ctx := context.Background()

	require.NoError(t, repo.CacheItemStats(ctx, []gw2.ItemStat{
		{ID: 1130, Name: "Viper's"},
		{ID: 161, Name: "Berserker's"},
	}, time.Hour))

	cached, err := repo.GetItemStats(ctx, []int{161, 1130})
	require.NoError(t, err)
	assert.Equal(t, "Berserker's", cached[161].Name)
	assert.Equal(t, "Viper's", cached[1130].Name)
}

func TestReferenceRepository_TitleAndGuild(t *testing.T) {
	repo := setupTestDatabase(t).ReferenceRepository()
	ctx := context.Background()

	missing, err := repo.GetTitle(ctx, 7)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.CacheTitle(ctx, &gw2.Title{ID: 7, Name: "Dragonslayer"}, time.Hour))
	title, err := repo.GetTitle(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, title)
	assert.Equal(t, "Dragonslayer", title.Name)

	guildID := "116E0C0E-0035-44A9-BB22-4AE3E23127E5"
	require.NoError(t, repo.CacheGuild(ctx, &gw2.Guild{ID: guildID, Name: "Mirrored Image", Tag: "MI"}, time.Hour))
	guild, err := repo.GetGuild(ctx, guildID)
	require.NoError(t, err)
	require.NotNil(t, guild)
	assert.Equal(t, "Mirrored Image", guild.Name)
	assert.Equal(t, "MI", guild.Tag)

	assert.ErrorIs(t, repo.CacheGuild(ctx, &gw2.Guild{Name: "no id"}, time.Hour), ErrInvalidRecord)
	assert.ErrorIs(t, repo.CacheTitle(ctx, nil, time.Hour), ErrInvalidRecord)
}

func TestReferenceRepository_Expiry(t *testing.T) {
	repo := setupTestDatabase(t).ReferenceRepository()
	ctx := context.Background()

	// Negative TTL stores already-expired entries
	require.NoError(t, repo.CacheItems(ctx, []gw2.Item{{ID: 1, Name: "Old"}}, -time.Hour))
	require.NoError(t, repo.CacheItemStats(ctx, []gw2.ItemStat{{ID: 2, Name: "Old"}}, -time.Hour))
	require.NoError(t, repo.CacheTitle(ctx, &gw2.Title{ID: 3, Name: "Old"}, -time.Hour))
	require.NoError(t, repo.CacheItems(ctx, []gw2.Item{{ID: 4, Name: "Fresh"}}, time.Hour))

	items, err := repo.GetItems(ctx, []int{1, 4})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	title, err := repo.GetTitle(ctx, 3)
	assert.NoError(t, err)
	assert.Nil(t, title)

	removed, err := repo.CleanExpiredCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	stats, err := repo.GetCacheStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Items)
	assert.Equal(t, 0, stats.ItemStats)
	assert.Equal(t, 0, stats.Titles)
}
